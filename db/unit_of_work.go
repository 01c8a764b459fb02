package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// UnitOfWork is the transaction (or read session) a repository call runs against.
// Repository methods never reach for a connection on their own.
type UnitOfWork struct {
	conn *gorm.DB
}

func NewUnitOfWork(ctx context.Context, conn *gorm.DB) *UnitOfWork {
	if conn == nil {
		return &UnitOfWork{}
	}
	return &UnitOfWork{conn: conn.WithContext(ctx)}
}

func (u *UnitOfWork) DB() *gorm.DB {
	return u.conn
}

// Transactor hands out units of work bound to one *gorm.DB.
type Transactor struct {
	conn     *gorm.DB
	replicas bool
	txOpts   []*sql.TxOptions
}

func NewTransactor(conn *gorm.DB) *Transactor {
	t := &Transactor{conn: conn, replicas: hasReplicas(conn)}
	// MySQL defaults to REPEATABLE READ; reads made after the pair lock must see
	// rows committed while we waited for it.
	if conn.Dialector.Name() == "mysql" {
		t.txOpts = []*sql.TxOptions{{Isolation: sql.LevelReadCommitted}}
	}
	return t
}

// Transaction runs fn in a database transaction on the primary. fn's error rolls
// everything back.
func (t *Transactor) Transaction(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	conn := t.conn.WithContext(ctx)
	if t.replicas {
		conn = conn.Clauses(dbresolver.Write)
	}
	return conn.Transaction(func(tx *gorm.DB) error {
		return fn(&UnitOfWork{conn: tx})
	}, t.txOpts...)
}

// Read returns a non-transactional unit of work, routed to a replica when one is
// registered. Use it only for views; decisions must be re-read inside Transaction.
func (t *Transactor) Read(ctx context.Context) *UnitOfWork {
	conn := t.conn.WithContext(ctx)
	if t.replicas {
		conn = conn.Clauses(dbresolver.Read)
	}
	return &UnitOfWork{conn: conn}
}
