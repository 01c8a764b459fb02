package services

import (
	"context"
	"time"

	"encuentros/db"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=services

// RelationshipStore is the storage surface the friendship services run against.
// *db.RelationshipRepository implements it.
type RelationshipStore interface {
	LockPair(uow *db.UnitOfWork, a, b int64) error
	InsertRequest(uow *db.UnitOfWork, origin, target int64) (int64, error)
	FindPending(uow *db.UnitOfWork, origin, target int64) (*int64, error)
	FindPendingReverse(uow *db.UnitOfWork, origin, target int64) (*int64, error)
	FindFriendship(uow *db.UnitOfWork, a, b int64) (*int64, error)
	InsertFriendship(uow *db.UnitOfWork, relationID, a, b int64) (int64, error)
	LoadRelation(uow *db.UnitOfWork, id int64) (db.RelationRecord, error)
	LockRelation(uow *db.UnitOfWork, id int64) (db.RelationRecord, error)
	LoadRequestTarget(uow *db.UnitOfWork, id int64) (int64, error)
	MarkAccepted(uow *db.UnitOfWork, id int64, at time.Time) error
	DeleteRelationAndRequest(uow *db.UnitOfWork, id int64) error
	ListFriends(uow *db.UnitOfWork, user int64) ([]int64, error)
	ListPendingForTarget(uow *db.UnitOfWork, user int64) ([]db.PendingRecord, error)
	ListAcceptedOriginatedBy(uow *db.UnitOfWork, user int64) ([]db.AcceptedRecord, error)
	ListAcceptedTargetedAt(uow *db.UnitOfWork, user int64) ([]db.AcceptedRecord, error)
	CountPendingForTarget(uow *db.UnitOfWork, user int64) (int64, error)
}

// TxRunner opens units of work. *db.Transactor implements it.
type TxRunner interface {
	Transaction(ctx context.Context, fn func(uow *db.UnitOfWork) error) error
	Read(ctx context.Context) *db.UnitOfWork
}

var (
	_ RelationshipStore = (*db.RelationshipRepository)(nil)
	_ TxRunner          = (*db.Transactor)(nil)
)
