package services

import (
	"context"
	"fmt"
	"log"

	"encuentros/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSearchLimit     = 50
	defaultAnnotateWorkers = 8
)

var annotationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "friend_annotation_failures_total",
	Help: "Search candidates whose relationship status could not be computed",
})

// AnnotatedUser is a search hit seen by the current user.
type AnnotatedUser struct {
	models.UserProfile
	IsFriend             bool `json:"isFriend"`
	PendingRequestFromMe bool `json:"pendingRequestFromMe"`
	PendingRequestToMe   bool `json:"pendingRequestToMe"`
}

type SearchService struct {
	tx        TxRunner
	query     *FriendshipQuery
	directory UserDirectory
	workers   int
	limit     int
}

func NewSearchService(tx TxRunner, store RelationshipStore, directory UserDirectory, workers, limit int) *SearchService {
	if workers <= 0 {
		workers = defaultAnnotateWorkers
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return &SearchService{
		tx:        tx,
		query:     NewFriendshipQuery(store),
		directory: directory,
		workers:   workers,
		limit:     limit,
	}
}

// Search looks users up by name. Results carry status flags only when currentUser > 0.
func (s *SearchService) Search(ctx context.Context, q string, currentUser int64) ([]AnnotatedUser, error) {
	candidates, err := s.directory.SearchByName(ctx, q, s.limit)
	if err != nil {
		return nil, err
	}
	if currentUser <= 0 {
		results := make([]AnnotatedUser, len(candidates))
		for i, c := range candidates {
			results[i] = AnnotatedUser{UserProfile: c}
		}
		return results, nil
	}
	return s.Annotate(ctx, currentUser, candidates), nil
}

// Annotate evaluates every candidate independently. A candidate whose status lookup
// fails keeps all flags false; the batch itself never fails.
func (s *SearchService) Annotate(ctx context.Context, currentUser int64, candidates []models.UserProfile) []AnnotatedUser {
	results := make([]AnnotatedUser, len(candidates))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, c := range candidates {
		i, c := i, c
		results[i] = AnnotatedUser{UserProfile: c}
		g.Go(func() error {
			status, err := s.statusOf(ctx, currentUser, c.ID)
			if err != nil {
				annotationFailures.Inc()
				log.Printf("Warning: annotate %d for %d: %v", c.ID, currentUser, err)
				return nil
			}
			results[i].IsFriend = status.IsFriend
			results[i].PendingRequestFromMe = status.PendingAtoB
			results[i].PendingRequestToMe = status.PendingBtoA
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *SearchService) statusOf(ctx context.Context, currentUser, other int64) (status FriendshipStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return FriendshipStatus{}, err
	}
	return s.query.Status(s.tx.Read(ctx), currentUser, other)
}
