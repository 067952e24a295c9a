// Package session issues and resolves bearer session tokens. Tokens are
// random, stored hashed, and scope every per-user resource (cart, profile,
// orders, wallet, notifications).
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a token does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

// Session identifies one logged-in browser. ID is the stable key used by
// repositories; the bearer token itself is never stored.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store persists sessions keyed by the hash of their token.
type Store interface {
	// Create mints a new session and returns the bearer token exactly once.
	Create(ctx context.Context) (token string, s *Session, err error)
	Lookup(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// HashToken derives the at-rest key for a bearer token. Only the hash ever
// touches storage, so a leaked store cannot be replayed as tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newSession(ttl time.Duration, now time.Time) (string, *Session) {
	token := uuid.NewString()
	return token, &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// MemoryStore keeps sessions in process memory. Used by the single-node
// deployment and by tests; expired entries are dropped lazily on lookup.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

func (m *MemoryStore) Create(_ context.Context) (string, *Session, error) {
	token, s := newSession(m.ttl, m.now())

	m.mu.Lock()
	m.sessions[HashToken(token)] = *s
	m.mu.Unlock()
	return token, s, nil
}

func (m *MemoryStore) Lookup(_ context.Context, token string) (*Session, error) {
	key := HashToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	if m.now().After(s.ExpiresAt) {
		delete(m.sessions, key)
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, HashToken(token))
	m.mu.Unlock()
	return nil
}
