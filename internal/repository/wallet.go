package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrochain/smarthub/internal/domain/wallet"
)

const (
	addWalletEntrySQL = `INSERT INTO wallet_transactions (id, session_id, kind, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	listWalletEntriesSQL = `SELECT id, kind, description, amount, created_at
		FROM wallet_transactions WHERE session_id = $1 ORDER BY created_at DESC`
)

var _ wallet.Repository = (*WalletRepository)(nil)

// WalletRepository implements wallet.Repository backed by PostgreSQL.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository returns a WalletRepository that uses the given pool.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Add appends a transaction to the session's wallet history.
func (r *WalletRepository) Add(ctx context.Context, sessionID string, e *wallet.Entry) error {
	_, err := r.pool.Exec(ctx, addWalletEntrySQL,
		e.ID, sessionID, e.Kind, e.Description, e.Amount, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("adding wallet entry %q: %w", e.ID, err)
	}
	return nil
}

// List returns the session's transactions, newest first.
func (r *WalletRepository) List(ctx context.Context, sessionID string) ([]wallet.Entry, error) {
	rows, err := r.pool.Query(ctx, listWalletEntriesSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing wallet entries: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (wallet.Entry, error) {
		var e wallet.Entry
		err := row.Scan(&e.ID, &e.Kind, &e.Description, &e.Amount, &e.CreatedAt)
		return e, err
	})
}
