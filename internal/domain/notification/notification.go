// Package notification holds the dashboard notification feed.
package notification

import (
	"context"
	"time"
)

// Kind categorizes a notification for icon and color selection in the feed.
type Kind string

const (
	KindAccepted  Kind = "accepted"
	KindRequest   Kind = "request"
	KindConfirmed Kind = "confirmed"
	KindDeclined  Kind = "declined"
)

// Notification is one entry in the feed.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository defines persistence operations for notifications, scoped per
// session.
type Repository interface {
	Add(ctx context.Context, sessionID string, n *Notification) error
	List(ctx context.Context, sessionID string) ([]Notification, error)
}
