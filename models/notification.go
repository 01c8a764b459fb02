package models

import "time"

type NotificationKind string

const (
	NotificationPending  NotificationKind = "pending"
	NotificationAccepted NotificationKind = "accepted"
)

// Notification - one feed entry. User is the other side of the relation: the sender
// for pending entries, the friend for accepted ones.
type Notification struct {
	RelationID int64            `json:"relationId"`
	Kind       NotificationKind `json:"kind"`
	User       UserProfile      `json:"user"`
	At         time.Time        `json:"at"`
}

// NotificationFeed - pull-based notification listing.
type NotificationFeed struct {
	Pending  []Notification `json:"pending"`
	Accepted []Notification `json:"accepted"`
}
