package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"encuentros/db"
	"encuentros/models"
)

type Outcome string

const (
	OutcomeRequested    Outcome = "requested"
	OutcomeAutoAccepted Outcome = "auto_accepted"
)

type CreateResult struct {
	Outcome    Outcome
	RelationID int64
}

type AcceptResult struct {
	RelationID int64
	Origin     int64
	Target     int64
	// AlreadyFriends is set when the pair had a friendship before this call,
	// so no new friendship row was written.
	AlreadyFriends bool
	// WasPending is false when the relation had been accepted earlier.
	WasPending bool
}

// FriendRequestService runs the friend request state machine. Each public method is a
// single transaction: every read that drives a decision is made inside it, after the
// pair lock is held.
type FriendRequestService struct {
	tx       TxRunner
	store    RelationshipStore
	query    *FriendshipQuery
	counters PendingCounter
	events   EventPublisher
	retries  int
	now      func() time.Time
}

func NewFriendRequestService(tx TxRunner, store RelationshipStore, counters PendingCounter, events EventPublisher, retries int) *FriendRequestService {
	if counters == nil {
		counters = NopCounter{}
	}
	if events == nil {
		events = NopPublisher{}
	}
	if retries < 0 {
		retries = 0
	}
	return &FriendRequestService{
		tx:       tx,
		store:    store,
		query:    NewFriendshipQuery(store),
		counters: counters,
		events:   events,
		retries:  retries,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// inTransaction retries fn when a unique index rejected one of its writes: a
// concurrent call got there first, and a fresh transaction will observe its result.
func (s *FriendRequestService) inTransaction(ctx context.Context, fn func(uow *db.UnitOfWork) error) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		err = s.tx.Transaction(ctx, fn)
		if !errors.Is(err, db.ErrDuplicate) {
			return err
		}
		log.Printf("Friend request write conflict, attempt %d/%d: %v", attempt+1, s.retries+1, err)
	}
	return err
}

// CreateRequest sends a friend request from origin to target. If target already has
// a pending request to origin, that request is accepted instead.
func (s *FriendRequestService) CreateRequest(ctx context.Context, origin, target int64) (CreateResult, error) {
	if origin <= 0 || target <= 0 {
		return CreateResult{}, ErrMissingUser
	}
	if origin == target {
		return CreateResult{}, ErrSelfRequest
	}

	var (
		result   CreateResult
		accepted AcceptResult
	)
	err := s.inTransaction(ctx, func(uow *db.UnitOfWork) error {
		result, accepted = CreateResult{}, AcceptResult{}

		if err := s.store.LockPair(uow, origin, target); err != nil {
			return err
		}
		pair, err := s.query.Pair(uow, origin, target)
		if err != nil {
			return err
		}
		if pair.FriendshipID != nil {
			return ErrAlreadyFriends
		}

		if pair.ReverseID != nil {
			accepted, err = s.accept(uow, *pair.ReverseID, target, origin, models.RelationPending)
			if err != nil {
				return err
			}
			result = CreateResult{Outcome: OutcomeAutoAccepted, RelationID: *pair.ReverseID}
			return nil
		}

		if pair.ForwardID != nil {
			return ErrRequestExists
		}
		id, err := s.store.InsertRequest(uow, origin, target)
		if err != nil {
			return err
		}
		result = CreateResult{Outcome: OutcomeRequested, RelationID: id}
		return nil
	})
	if errors.Is(err, db.ErrDuplicate) {
		return CreateResult{}, ErrRequestExists
	}
	if err != nil {
		return CreateResult{}, wrapStorage("create friend request", err)
	}

	switch result.Outcome {
	case OutcomeAutoAccepted:
		s.afterAccept(ctx, EventRequestAutoAccepted, accepted)
	default:
		s.counters.Adjust(ctx, target, 1)
		s.publish(ctx, NewEvent(EventRequestCreated, result.RelationID, origin, target))
	}
	return result, nil
}

// AcceptRequest accepts relationID on behalf of actingUser, who must be its target.
func (s *FriendRequestService) AcceptRequest(ctx context.Context, relationID, actingUser int64) (AcceptResult, error) {
	if relationID <= 0 {
		return AcceptResult{}, ErrMissingRelation
	}
	if actingUser <= 0 {
		return AcceptResult{}, ErrMissingUser
	}

	var result AcceptResult
	err := s.inTransaction(ctx, func(uow *db.UnitOfWork) error {
		rel, target, err := s.loadForAnswer(uow, relationID, actingUser)
		if err != nil {
			return err
		}
		result, err = s.accept(uow, rel.ID, rel.OriginUserID, target, rel.State)
		return err
	})
	if errors.Is(err, db.ErrDuplicate) {
		return AcceptResult{}, ErrAlreadyAccepted
	}
	if err != nil {
		return AcceptResult{}, wrapStorage("accept friend request", err)
	}

	if result.WasPending {
		s.afterAccept(ctx, EventRequestAccepted, result)
	}
	return result, nil
}

// RejectRequest deletes the pending relationID and its request. Only the target may
// reject, and accepted relations are kept.
func (s *FriendRequestService) RejectRequest(ctx context.Context, relationID, actingUser int64) error {
	if relationID <= 0 {
		return ErrMissingRelation
	}
	if actingUser <= 0 {
		return ErrMissingUser
	}

	var origin int64
	err := s.inTransaction(ctx, func(uow *db.UnitOfWork) error {
		rel, _, err := s.loadForAnswer(uow, relationID, actingUser)
		if err != nil {
			return err
		}
		if rel.State == models.RelationAccepted {
			return ErrAlreadyAccepted
		}
		if err := s.store.DeleteRelationAndRequest(uow, rel.ID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return ErrRelationNotFound
			}
			return err
		}
		origin = rel.OriginUserID
		return nil
	})
	if err != nil {
		return wrapStorage("reject friend request", err)
	}

	s.counters.Adjust(ctx, actingUser, -1)
	s.publish(ctx, NewEvent(EventRequestRejected, relationID, origin, actingUser))
	return nil
}

// loadForAnswer checks that actingUser is the target of relationID, locks the pair and
// returns the relation as it stands under the lock.
func (s *FriendRequestService) loadForAnswer(uow *db.UnitOfWork, relationID, actingUser int64) (db.RelationRecord, int64, error) {
	target, err := s.store.LoadRequestTarget(uow, relationID)
	if errors.Is(err, db.ErrNotFound) {
		return db.RelationRecord{}, 0, ErrRequestNotFound
	}
	if err != nil {
		return db.RelationRecord{}, 0, err
	}
	if actingUser != target {
		return db.RelationRecord{}, 0, ErrNotRequestTarget
	}

	rel, err := s.store.LoadRelation(uow, relationID)
	if errors.Is(err, db.ErrNotFound) {
		return db.RelationRecord{}, 0, ErrRelationNotFound
	}
	if err != nil {
		return db.RelationRecord{}, 0, err
	}

	if err := s.store.LockPair(uow, rel.OriginUserID, target); err != nil {
		return db.RelationRecord{}, 0, err
	}
	// a concurrent answer may have landed while we waited for the lock
	rel, err = s.store.LockRelation(uow, relationID)
	if errors.Is(err, db.ErrNotFound) {
		return db.RelationRecord{}, 0, ErrRelationNotFound
	}
	if err != nil {
		return db.RelationRecord{}, 0, err
	}
	return rel, target, nil
}

// accept moves relationID (origin -> target) to accepted and creates the friendship,
// unless the pair already has one. Callers hold the pair lock.
func (s *FriendRequestService) accept(uow *db.UnitOfWork, relationID, origin, target int64, state models.RelationState) (AcceptResult, error) {
	result := AcceptResult{
		RelationID: relationID,
		Origin:     origin,
		Target:     target,
		WasPending: state == models.RelationPending,
	}

	friendship, err := s.store.FindFriendship(uow, origin, target)
	if err != nil {
		return AcceptResult{}, fmt.Errorf("find friendship %d/%d: %w", origin, target, err)
	}
	result.AlreadyFriends = friendship != nil

	if !result.WasPending {
		if result.AlreadyFriends {
			return result, nil
		}
		return AcceptResult{}, ErrAlreadyAccepted
	}

	if err := s.store.MarkAccepted(uow, relationID, s.now()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return AcceptResult{}, ErrRelationNotFound
		}
		return AcceptResult{}, err
	}
	if result.AlreadyFriends {
		return result, nil
	}
	if _, err := s.store.InsertFriendship(uow, relationID, origin, target); err != nil {
		return AcceptResult{}, err
	}
	return result, nil
}

func (s *FriendRequestService) afterAccept(ctx context.Context, t EventType, res AcceptResult) {
	s.counters.Adjust(ctx, res.Target, -1)
	s.publish(ctx, NewEvent(t, res.RelationID, res.Origin, res.Target))
}

func (s *FriendRequestService) publish(ctx context.Context, event FriendshipEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s for relation %d: %v", event.Type, event.RelationID, err)
	}
}

// wrapStorage passes domain errors through unchanged and tags the rest as storage
// failures for the log.
func wrapStorage(op string, err error) error {
	if isDomainError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound)
}
