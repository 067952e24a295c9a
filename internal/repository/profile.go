package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrochain/smarthub/internal/domain/profile"
)

const (
	loadProfileSQL = `SELECT name, email, profile_image, currency, country, address
		FROM profiles WHERE session_id = $1`

	saveProfileSQL = `INSERT INTO profiles (session_id, name, email, profile_image, currency, country, address, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (session_id) DO UPDATE SET
			name = EXCLUDED.name, email = EXCLUDED.email, profile_image = EXCLUDED.profile_image,
			currency = EXCLUDED.currency, country = EXCLUDED.country, address = EXCLUDED.address,
			updated_at = now()`

	deleteProfileSQL = `DELETE FROM profiles WHERE session_id = $1`
)

var _ profile.Persister = (*ProfilePersister)(nil)

// ProfilePersister mirrors one session's profile to PostgreSQL. The password
// is deliberately never stored; authentication is simulated upstream.
type ProfilePersister struct {
	pool      *pgxpool.Pool
	sessionID string
}

// NewProfilePersister returns a ProfilePersister bound to the given session.
func NewProfilePersister(pool *pgxpool.Pool, sessionID string) *ProfilePersister {
	return &ProfilePersister{pool: pool, sessionID: sessionID}
}

// Load returns the persisted profile, or nil when none exists.
func (p *ProfilePersister) Load(ctx context.Context) (*profile.Profile, error) {
	var pr profile.Profile
	err := p.pool.QueryRow(ctx, loadProfileSQL, p.sessionID).Scan(
		&pr.Name, &pr.Email, &pr.ProfileImage, &pr.Currency, &pr.Country, &pr.Address,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &pr, nil
}

// Save replaces the persisted profile.
func (p *ProfilePersister) Save(ctx context.Context, pr profile.Profile) error {
	_, err := p.pool.Exec(ctx, saveProfileSQL,
		p.sessionID, pr.Name, pr.Email, pr.ProfileImage, pr.Currency, pr.Country, pr.Address,
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Delete removes the persisted profile. Absent rows are a no-op.
func (p *ProfilePersister) Delete(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, deleteProfileSQL, p.sessionID); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}
