package services

import (
	"fmt"

	"encuentros/db"
)

// FriendshipStatus is how a relates to b.
type FriendshipStatus struct {
	IsFriend    bool `json:"isFriend"`
	PendingAtoB bool `json:"pendingAtoB"`
	PendingBtoA bool `json:"pendingBtoA"`
}

// PairState carries the ids behind a FriendshipStatus.
type PairState struct {
	FriendshipID *int64
	ForwardID    *int64 // pending a -> b
	ReverseID    *int64 // pending b -> a
}

func (p PairState) Status() FriendshipStatus {
	return FriendshipStatus{
		IsFriend:    p.FriendshipID != nil,
		PendingAtoB: p.ForwardID != nil,
		PendingBtoA: p.ReverseID != nil,
	}
}

// FriendshipQuery derives relationship status from the store. Nothing is cached:
// results are as current as the unit of work they run in.
type FriendshipQuery struct {
	store RelationshipStore
}

func NewFriendshipQuery(store RelationshipStore) *FriendshipQuery {
	return &FriendshipQuery{store: store}
}

func (q *FriendshipQuery) Pair(uow *db.UnitOfWork, a, b int64) (PairState, error) {
	var (
		state PairState
		err   error
	)
	if state.FriendshipID, err = q.store.FindFriendship(uow, a, b); err != nil {
		return PairState{}, fmt.Errorf("find friendship %d/%d: %w", a, b, err)
	}
	if state.ForwardID, err = q.store.FindPending(uow, a, b); err != nil {
		return PairState{}, fmt.Errorf("find pending %d->%d: %w", a, b, err)
	}
	if state.ReverseID, err = q.store.FindPendingReverse(uow, a, b); err != nil {
		return PairState{}, fmt.Errorf("find pending %d->%d: %w", b, a, err)
	}
	return state, nil
}

func (q *FriendshipQuery) Status(uow *db.UnitOfWork, a, b int64) (FriendshipStatus, error) {
	state, err := q.Pair(uow, a, b)
	if err != nil {
		return FriendshipStatus{}, err
	}
	return state.Status(), nil
}
