package db

import (
	"errors"
	"fmt"
	"time"

	"encuentros/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

type RelationRecord struct {
	ID           int64
	OriginUserID int64
	State        models.RelationState
	RequestedAt  time.Time
	AcceptedAt   *time.Time
}

type PendingRecord struct {
	RelationID   int64
	OriginUserID int64
	RequestedAt  time.Time
}

type AcceptedRecord struct {
	RelationID  int64
	OtherUserID int64
	AcceptedAt  time.Time
}

// RelationshipRepository owns relations, requests and friendships. It keeps no state:
// every call runs against the unit of work it is given.
type RelationshipRepository struct{}

func NewRelationshipRepository() *RelationshipRepository {
	return &RelationshipRepository{}
}

// LockPair serializes mutations of the unordered pair {a, b} until the enclosing
// transaction ends. On sqlite the insert alone takes the database write lock.
func (r *RelationshipRepository) LockPair(uow *UnitOfWork, a, b int64) error {
	low, high := models.OrderedPair(a, b)
	lock := models.PairLock{UserLow: low, UserHigh: high}

	tx := uow.DB()
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lock).Error; err != nil {
		return fmt.Errorf("lock pair %d/%d: %w", low, high, translate(err))
	}
	if tx.Dialector.Name() == "sqlite" {
		return nil
	}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_low = ? AND user_high = ?", low, high).
		First(&lock).Error
	if err != nil {
		return fmt.Errorf("lock pair %d/%d: %w", low, high, translate(err))
	}
	return nil
}

// InsertRequest creates a pending Relation and its Request. ErrDuplicate means a
// pending (origin, target) request already exists.
func (r *RelationshipRepository) InsertRequest(uow *UnitOfWork, origin, target int64) (int64, error) {
	key := models.PendingKey(origin, target)
	rel := models.Relation{
		OriginUserID: origin,
		State:        models.RelationPending,
		RequestedAt:  time.Now().UTC(),
		PendingKey:   &key,
	}

	tx := uow.DB()
	if err := tx.Create(&rel).Error; err != nil {
		return 0, translate(err)
	}
	req := models.Request{RelationID: rel.ID, TargetUserID: target}
	if err := tx.Omit(clause.Associations).Create(&req).Error; err != nil {
		return 0, translate(err)
	}
	return rel.ID, nil
}

// FindPending looks for a pending request from origin to target.
func (r *RelationshipRepository) FindPending(uow *UnitOfWork, origin, target int64) (*int64, error) {
	var ids []int64
	err := uow.DB().Model(&models.Relation{}).
		Where("pending_key = ? AND state = ?", models.PendingKey(origin, target), models.RelationPending).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

// FindPendingReverse looks for a pending request from target to origin.
func (r *RelationshipRepository) FindPendingReverse(uow *UnitOfWork, origin, target int64) (*int64, error) {
	return r.FindPending(uow, target, origin)
}

func (r *RelationshipRepository) FindFriendship(uow *UnitOfWork, a, b int64) (*int64, error) {
	low, high := models.OrderedPair(a, b)
	var ids []int64
	err := uow.DB().Model(&models.Friendship{}).
		Where("user_low = ? AND user_high = ?", low, high).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

// InsertFriendship records the edge produced by accepting relationID (a = origin,
// b = target). A second insert for the same pair fails with ErrDuplicate.
func (r *RelationshipRepository) InsertFriendship(uow *UnitOfWork, relationID, a, b int64) (int64, error) {
	low, high := models.OrderedPair(a, b)
	f := models.Friendship{
		RelationID: relationID,
		UserA:      a,
		UserB:      b,
		UserLow:    low,
		UserHigh:   high,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uow.DB().Create(&f).Error; err != nil {
		return 0, translate(err)
	}
	return f.ID, nil
}

func (r *RelationshipRepository) LoadRelation(uow *UnitOfWork, id int64) (RelationRecord, error) {
	return loadRelation(uow.DB(), id)
}

// LockRelation reads the relation with a row lock. A locking read sees the latest
// committed row, which a plain SELECT under MySQL's REPEATABLE READ snapshot may not.
func (r *RelationshipRepository) LockRelation(uow *UnitOfWork, id int64) (RelationRecord, error) {
	tx := uow.DB()
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return loadRelation(tx, id)
}

func loadRelation(tx *gorm.DB, id int64) (RelationRecord, error) {
	var rel models.Relation
	if err := tx.First(&rel, id).Error; err != nil {
		return RelationRecord{}, translate(err)
	}
	return RelationRecord{
		ID:           rel.ID,
		OriginUserID: rel.OriginUserID,
		State:        rel.State,
		RequestedAt:  rel.RequestedAt,
		AcceptedAt:   rel.AcceptedAt,
	}, nil
}

func (r *RelationshipRepository) LoadRequestTarget(uow *UnitOfWork, id int64) (int64, error) {
	var targets []int64
	err := uow.DB().Model(&models.Request{}).
		Where("relation_id = ?", id).
		Limit(1).
		Pluck("target_user_id", &targets).Error
	if err != nil {
		return 0, err
	}
	if len(targets) == 0 {
		return 0, ErrNotFound
	}
	return targets[0], nil
}

func (r *RelationshipRepository) MarkAccepted(uow *UnitOfWork, id int64, at time.Time) error {
	res := uow.DB().Model(&models.Relation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":       models.RelationAccepted,
			"accepted_at": at.UTC(),
			"pending_key": nil,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RelationshipRepository) DeleteRelationAndRequest(uow *UnitOfWork, id int64) error {
	tx := uow.DB()
	if err := tx.Where("relation_id = ?", id).Delete(&models.Request{}).Error; err != nil {
		return translate(err)
	}
	res := tx.Where("id = ?", id).Delete(&models.Relation{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFriends returns the other side of every friendship user takes part in,
// newest first.
func (r *RelationshipRepository) ListFriends(uow *UnitOfWork, user int64) ([]int64, error) {
	var edges []models.Friendship
	err := uow.DB().
		Where("user_a = ? OR user_b = ?", user, user).
		Order("created_at DESC, id DESC").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(edges))
	friends := make([]int64, 0, len(edges))
	for _, e := range edges {
		other := e.UserA
		if other == user {
			other = e.UserB
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		friends = append(friends, other)
	}
	return friends, nil
}

func (r *RelationshipRepository) ListPendingForTarget(uow *UnitOfWork, user int64) ([]PendingRecord, error) {
	var rows []PendingRecord
	err := uow.DB().
		Table("relations r").
		Select("r.id AS relation_id, r.origin_user_id, r.requested_at").
		Joins("JOIN requests q ON q.relation_id = r.id").
		Where("q.target_user_id = ? AND r.state = ?", user, models.RelationPending).
		Order("r.requested_at DESC, r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAcceptedOriginatedBy lists accepted requests user sent; OtherUserID is the target.
func (r *RelationshipRepository) ListAcceptedOriginatedBy(uow *UnitOfWork, user int64) ([]AcceptedRecord, error) {
	var rows []AcceptedRecord
	err := uow.DB().
		Table("relations r").
		Select("r.id AS relation_id, q.target_user_id AS other_user_id, r.accepted_at").
		Joins("JOIN requests q ON q.relation_id = r.id").
		Where("r.origin_user_id = ? AND r.state = ?", user, models.RelationAccepted).
		Order("r.accepted_at DESC, r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAcceptedTargetedAt lists accepted requests user received; OtherUserID is the origin.
func (r *RelationshipRepository) ListAcceptedTargetedAt(uow *UnitOfWork, user int64) ([]AcceptedRecord, error) {
	var rows []AcceptedRecord
	err := uow.DB().
		Table("relations r").
		Select("r.id AS relation_id, r.origin_user_id AS other_user_id, r.accepted_at").
		Joins("JOIN requests q ON q.relation_id = r.id").
		Where("q.target_user_id = ? AND r.state = ?", user, models.RelationAccepted).
		Order("r.accepted_at DESC, r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RelationshipRepository) CountPendingForTarget(uow *UnitOfWork, user int64) (int64, error) {
	var count int64
	err := uow.DB().
		Table("relations r").
		Joins("JOIN requests q ON q.relation_id = r.id").
		Where("q.target_user_id = ? AND r.state = ?", user, models.RelationPending).
		Count(&count).Error
	return count, err
}

// ListPendingTargets returns every user with at least one incoming pending request.
func (r *RelationshipRepository) ListPendingTargets(uow *UnitOfWork) ([]int64, error) {
	var users []int64
	err := uow.DB().
		Table("relations r").
		Joins("JOIN requests q ON q.relation_id = r.id").
		Where("r.state = ?", models.RelationPending).
		Distinct().
		Order("q.target_user_id").
		Pluck("q.target_user_id", &users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
