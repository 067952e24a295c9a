package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrochain/smarthub/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, session_id, status, items, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	listOrdersSQL = `SELECT id, status, items, total, created_at
		FROM orders WHERE session_id = $1 ORDER BY created_at DESC`

	getOrderByIDSQL = `SELECT id, status, items, total, created_at
		FROM orders WHERE session_id = $1 AND id = $2`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. Orders
// are scoped to the session that placed them.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. Line items are serialized to JSON for storage
// in the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, sessionID string, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, sessionID, o.Status, itemsJSON, o.Total, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// List returns the session's orders, newest first.
func (r *OrderRepository) List(ctx context.Context, sessionID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// GetByID returns one of the session's orders by its identifier.
func (r *OrderRepository) GetByID(ctx context.Context, sessionID, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, sessionID, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		itemsJSON []byte
	)
	if err := row.Scan(&o.ID, &o.Status, &itemsJSON, &o.Total, &o.CreatedAt); err != nil {
		return o, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return o, fmt.Errorf("unmarshaling order items: %w", err)
	}
	return o, nil
}
