package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrochain/smarthub/internal/domain/cart"
)

const (
	loadCartSQL = `SELECT lines FROM carts WHERE session_id = $1`

	saveCartSQL = `INSERT INTO carts (session_id, lines, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id) DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()`
)

var _ cart.Persister = (*CartPersister)(nil)

// CartPersister mirrors one session's cart lines to PostgreSQL.
type CartPersister struct {
	pool      *pgxpool.Pool
	sessionID string
}

// NewCartPersister returns a CartPersister bound to the given session.
func NewCartPersister(pool *pgxpool.Pool, sessionID string) *CartPersister {
	return &CartPersister{pool: pool, sessionID: sessionID}
}

// Load returns the persisted cart lines, or nil when no cart exists yet.
func (p *CartPersister) Load(ctx context.Context) ([]cart.Line, error) {
	var linesJSON []byte
	err := p.pool.QueryRow(ctx, loadCartSQL, p.sessionID).Scan(&linesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(linesJSON, &lines); err != nil {
		return nil, fmt.Errorf("unmarshaling cart lines: %w", err)
	}
	return lines, nil
}

// Save replaces the persisted cart with the given lines.
func (p *CartPersister) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshaling cart lines: %w", err)
	}

	if _, err := p.pool.Exec(ctx, saveCartSQL, p.sessionID, linesJSON); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}
