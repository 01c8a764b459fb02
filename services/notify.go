package services

import (
	"context"
	"fmt"
	"sort"

	"encuentros/db"
	"encuentros/models"
)

// NotificationService builds the pull-based notification feed.
type NotificationService struct {
	tx        TxRunner
	store     RelationshipStore
	directory UserDirectory
	// symmetric also lists acceptances of requests the user received.
	symmetric bool
}

func NewNotificationService(tx TxRunner, store RelationshipStore, directory UserDirectory, symmetric bool) *NotificationService {
	return &NotificationService{tx: tx, store: store, directory: directory, symmetric: symmetric}
}

// Build returns incoming pending requests and acceptances, newest first. By default
// Accepted only covers requests the user sent.
func (s *NotificationService) Build(ctx context.Context, userID int64) (models.NotificationFeed, error) {
	if userID <= 0 {
		return models.NotificationFeed{}, ErrMissingUser
	}

	uow := s.tx.Read(ctx)
	pending, err := s.store.ListPendingForTarget(uow, userID)
	if err != nil {
		return models.NotificationFeed{}, fmt.Errorf("list pending for %d: %w", userID, err)
	}
	accepted, err := s.acceptedFor(uow, userID)
	if err != nil {
		return models.NotificationFeed{}, err
	}

	ids := make([]int64, 0, len(pending)+len(accepted))
	for _, p := range pending {
		ids = append(ids, p.OriginUserID)
	}
	for _, a := range accepted {
		ids = append(ids, a.OtherUserID)
	}
	profiles, err := s.directory.Profiles(ctx, ids)
	if err != nil {
		return models.NotificationFeed{}, err
	}

	feed := models.NotificationFeed{
		Pending:  make([]models.Notification, 0, len(pending)),
		Accepted: make([]models.Notification, 0, len(accepted)),
	}
	for _, p := range pending {
		feed.Pending = append(feed.Pending, models.Notification{
			RelationID: p.RelationID,
			Kind:       models.NotificationPending,
			User:       profileOrID(profiles, p.OriginUserID),
			At:         p.RequestedAt,
		})
	}
	for _, a := range accepted {
		feed.Accepted = append(feed.Accepted, models.Notification{
			RelationID: a.RelationID,
			Kind:       models.NotificationAccepted,
			User:       profileOrID(profiles, a.OtherUserID),
			At:         a.AcceptedAt,
		})
	}
	return feed, nil
}

func (s *NotificationService) acceptedFor(uow *db.UnitOfWork, userID int64) ([]db.AcceptedRecord, error) {
	accepted, err := s.store.ListAcceptedOriginatedBy(uow, userID)
	if err != nil {
		return nil, fmt.Errorf("list accepted for %d: %w", userID, err)
	}
	if !s.symmetric {
		return accepted, nil
	}

	received, err := s.store.ListAcceptedTargetedAt(uow, userID)
	if err != nil {
		return nil, fmt.Errorf("list accepted for %d: %w", userID, err)
	}
	accepted = append(accepted, received...)
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].AcceptedAt.After(accepted[j].AcceptedAt)
	})
	return accepted, nil
}

func profileOrID(profiles map[int64]models.UserProfile, id int64) models.UserProfile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return models.UserProfile{ID: id}
}
