package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrochain/smarthub/internal/domain/notification"
)

const (
	addNotificationSQL = `INSERT INTO notifications (id, session_id, kind, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	listNotificationsSQL = `SELECT id, kind, title, body, created_at
		FROM notifications WHERE session_id = $1 ORDER BY created_at DESC`
)

var _ notification.Repository = (*NotificationRepository)(nil)

// NotificationRepository implements notification.Repository backed by
// PostgreSQL.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a NotificationRepository that uses the
// given pool.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Add appends a notification to the session's feed.
func (r *NotificationRepository) Add(ctx context.Context, sessionID string, n *notification.Notification) error {
	_, err := r.pool.Exec(ctx, addNotificationSQL,
		n.ID, sessionID, n.Kind, n.Title, n.Body, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("adding notification %q: %w", n.ID, err)
	}
	return nil
}

// List returns the session's notifications, newest first.
func (r *NotificationRepository) List(ctx context.Context, sessionID string) ([]notification.Notification, error) {
	rows, err := r.pool.Query(ctx, listNotificationsSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (notification.Notification, error) {
		var n notification.Notification
		err := row.Scan(&n.ID, &n.Kind, &n.Title, &n.Body, &n.CreatedAt)
		return n, err
	})
}
