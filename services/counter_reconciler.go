package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"encuentros/db"
)

// PendingCountSource is the slice of the repository the reconciler reads.
type PendingCountSource interface {
	CountPendingForTarget(uow *db.UnitOfWork, user int64) (int64, error)
	ListPendingTargets(uow *db.UnitOfWork) ([]int64, error)
}

var _ PendingCountSource = (*db.RelationshipRepository)(nil)

// CounterReconciler brings cached pending-request counters back in line with the
// database. Counter updates after commit are best effort, so drift is expected.
type CounterReconciler struct {
	tx       TxRunner
	source   PendingCountSource
	counters PendingCounter
}

func NewCounterReconciler(tx TxRunner, source PendingCountSource, counters PendingCounter) *CounterReconciler {
	return &CounterReconciler{tx: tx, source: source, counters: counters}
}

// ReconcileUser rewrites the cached counter of one user when it differs from the
// database. Users without a cached value are left alone; the next read seeds them.
func (r *CounterReconciler) ReconcileUser(ctx context.Context, userID int64) (bool, error) {
	actual, err := r.source.CountPendingForTarget(r.tx.Read(ctx), userID)
	if err != nil {
		return false, fmt.Errorf("failed to count actual value: %w", err)
	}

	cached, ok, err := r.counters.Get(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get counter: %w", err)
	}
	if !ok || cached == actual {
		return false, nil
	}

	log.Printf("Counter mismatch for user %d: cached=%d, actual=%d. Reconciling...", userID, cached, actual)
	if err := r.counters.Set(ctx, userID, actual); err != nil {
		return false, fmt.Errorf("failed to reconcile counter: %w", err)
	}
	return true, nil
}

// ReconcileAll checks every user with incoming pending requests plus every user
// with a cached counter, and returns how many counters were rewritten. The cached
// side covers counters left above zero after their last request was answered.
func (r *CounterReconciler) ReconcileAll(ctx context.Context) (int, error) {
	pending, err := r.source.ListPendingTargets(r.tx.Read(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to list users for reconciliation: %w", err)
	}
	cached, err := r.counters.CachedUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cached counters: %w", err)
	}

	seen := make(map[int64]struct{}, len(pending)+len(cached))
	fixed := 0
	for _, userID := range append(pending, cached...) {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}

		if err := ctx.Err(); err != nil {
			return fixed, err
		}
		changed, err := r.ReconcileUser(ctx, userID)
		if err != nil {
			log.Printf("Failed to reconcile counter for user %d: %v", userID, err)
			continue
		}
		if changed {
			fixed++
		}
	}
	return fixed, nil
}

// Run reconciles on every tick until ctx is done.
func (r *CounterReconciler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fixed, err := r.ReconcileAll(ctx)
			if err != nil {
				log.Printf("Counter reconciliation stopped: %v", err)
				continue
			}
			log.Printf("Reconciliation completed: %d counters fixed", fixed)
		}
	}
}
