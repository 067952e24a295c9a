// Package profile implements the user profile store: a single mutable
// profile per client session, updated via partial-patch merge and mirrored
// to a persistence backend.
package profile

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Profile holds the account details shown in the dashboard settings page.
// Validation happens in the form layer before reaching the store.
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	ProfileImage string `json:"profileImage"`
	Currency     string `json:"currency"`
	Country      string `json:"country"`
	Address      string `json:"address"`
}

// Patch carries a partial profile update. Nil fields are left untouched.
type Patch struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	Country      *string `json:"country,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// Persister mirrors the profile to a durable backend.
type Persister interface {
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p Profile) error
	Delete(ctx context.Context) error
}

// DemoProfile is the default synthesized when nothing is persisted, matching
// the storefront's first-load experience.
func DemoProfile() Profile {
	return Profile{
		Name:         "John Deo",
		Email:        "johndeo@gmail.com",
		ProfileImage: "/avatar-2.png",
		Currency:     "usd",
		Country:      "usa",
		Address:      "",
	}
}

// Store owns the active profile. At most one profile exists per session;
// logout clears both memory and the persisted record.
type Store struct {
	persister Persister
	lg        *zap.Logger

	mu      sync.Mutex
	current *Profile
}

// NewStore creates a Store, loading the persisted profile or synthesizing
// the demo default. Load failures are logged and fall back to the default.
func NewStore(ctx context.Context, persister Persister, lg *zap.Logger) *Store {
	s := &Store{persister: persister, lg: lg}

	p, err := persister.Load(ctx)
	if err != nil {
		lg.Warn("Failed to load persisted profile, using default", zap.Error(err))
	}
	if p == nil {
		demo := DemoProfile()
		p = &demo
	}
	s.current = p
	return s
}

// Current returns a copy of the active profile, or nil after logout.
func (s *Store) Current() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Update merges the patch into the current profile (or into a blank profile
// if the user has logged out) and persists the result.
func (s *Store) Update(ctx context.Context, patch Patch) Profile {
	s.mu.Lock()
	base := Profile{ProfileImage: "/avatar-2.png"}
	if s.current != nil {
		base = *s.current
	}
	apply(&base, patch)
	s.current = &base
	updated := base
	s.mu.Unlock()

	if err := s.persister.Save(ctx, updated); err != nil {
		s.lg.Error("Failed to persist profile", zap.Error(err))
	}
	return updated
}

// Logout clears the in-memory profile and deletes the persisted record.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.persister.Delete(ctx); err != nil {
		s.lg.Error("Failed to delete persisted profile", zap.Error(err))
	}
}

func apply(p *Profile, patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Password != nil {
		p.Password = *patch.Password
	}
	if patch.ProfileImage != nil {
		p.ProfileImage = *patch.ProfileImage
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.Country != nil {
		p.Country = *patch.Country
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
}
