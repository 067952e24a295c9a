package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	token, created, err := store.Create(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Tokens resolve by value; a different token is a different session.
	_, err = store.Lookup(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	token, _, err := store.Create(context.Background())
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(30 * time.Second) }
	_, err = store.Lookup(context.Background(), token)
	assert.NoError(t, err)

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = store.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	token, _, err := store.Create(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), token))
	_, err = store.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an unknown token is a no-op.
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestHashToken_Stable(t *testing.T) {
	a := HashToken("abc")
	assert.Equal(t, a, HashToken("abc"))
	assert.NotEqual(t, a, HashToken("abd"))
	assert.Len(t, a, 64)
}
