package services

import (
	"context"
	"fmt"
	"log"

	"encuentros/models"
)

type FriendService struct {
	tx        TxRunner
	store     RelationshipStore
	directory UserDirectory
	counters  PendingCounter
}

func NewFriendService(tx TxRunner, store RelationshipStore, directory UserDirectory, counters PendingCounter) *FriendService {
	if counters == nil {
		counters = NopCounter{}
	}
	return &FriendService{tx: tx, store: store, directory: directory, counters: counters}
}

// GetFriends lists the user's friends with display data, newest friendship first.
func (fs *FriendService) GetFriends(ctx context.Context, userID int64) ([]models.UserProfile, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}

	ids, err := fs.store.ListFriends(fs.tx.Read(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	profiles, err := fs.directory.Profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	friends := make([]models.UserProfile, 0, len(ids))
	for _, id := range ids {
		friends = append(friends, profileOrID(profiles, id))
	}
	return friends, nil
}

// PendingCount returns the number of incoming pending requests, from the counter
// cache when it has the key, otherwise from the database (reseeding the cache).
func (fs *FriendService) PendingCount(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrMissingUser
	}

	count, ok, err := fs.counters.Get(ctx, userID)
	if err != nil {
		log.Printf("Warning: counter read for %d failed, using database: %v", userID, err)
	}
	if ok {
		return count, nil
	}

	count, err = fs.store.CountPendingForTarget(fs.tx.Read(ctx), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	if err := fs.counters.Set(ctx, userID, count); err != nil {
		log.Printf("Warning: counter reseed for %d failed: %v", userID, err)
	}
	return count, nil
}
