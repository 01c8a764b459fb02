package models

import (
	"fmt"
	"time"
)

type RelationState string

const (
	RelationPending  RelationState = "pending"
	RelationAccepted RelationState = "accepted"
)

// Relation - directional record of a friend request: origin initiated it.
// PendingKey is "<origin>:<target>" while pending and NULL afterwards, so the unique
// index only covers live requests.
type Relation struct {
	ID           int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OriginUserID int64         `gorm:"not null;index" json:"origin_user_id"`
	State        RelationState `gorm:"size:16;not null;index" json:"state"`
	RequestedAt  time.Time     `gorm:"not null" json:"requested_at"`
	AcceptedAt   *time.Time    `json:"accepted_at,omitempty"`
	PendingKey   *string       `gorm:"size:64;uniqueIndex:relation_pending_key" json:"-"`
}

func (Relation) TableName() string {
	return "relations"
}

// Request - destination side of a Relation.
type Request struct {
	RelationID   int64    `gorm:"primaryKey;autoIncrement:false" json:"relation_id"`
	TargetUserID int64    `gorm:"not null;index" json:"target_user_id"`
	Relation     Relation `gorm:"foreignKey:RelationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Request) TableName() string {
	return "requests"
}

// Friendship - undirected edge created when a Relation is accepted.
// UserA is the origin of that relation, UserB its target.
type Friendship struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RelationID int64     `gorm:"index" json:"relation_id"`
	UserA      int64     `gorm:"not null;index" json:"user_a"`
	UserB      int64     `gorm:"not null;index" json:"user_b"`
	UserLow    int64     `gorm:"not null;uniqueIndex:friendship_pair" json:"-"`
	UserHigh   int64     `gorm:"not null;uniqueIndex:friendship_pair" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// PairLock rows exist only to be locked FOR UPDATE while a pair is mutated.
type PairLock struct {
	UserLow  int64 `gorm:"primaryKey;autoIncrement:false"`
	UserHigh int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (PairLock) TableName() string {
	return "friend_pair_locks"
}

func PendingKey(origin, target int64) string {
	return fmt.Sprintf("%d:%d", origin, target)
}

// OrderedPair returns the pair as (low, high).
func OrderedPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
