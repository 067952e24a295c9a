package profile

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/agrochain/smarthub/internal/localstore"
)

// storeKey is the localstore key the profile persists under.
const storeKey = "smarthub_user"

var _ Persister = (*LocalPersister)(nil)

// LocalPersister mirrors the profile into a localstore.Store.
type LocalPersister struct {
	store *localstore.Store
}

// NewLocalPersister wraps the given localstore.
func NewLocalPersister(store *localstore.Store) *LocalPersister {
	return &LocalPersister{store: store}
}

// Load reads the persisted profile. A missing key yields (nil, nil) so the
// store synthesizes its default.
func (p *LocalPersister) Load(_ context.Context) (*Profile, error) {
	raw, ok := p.store.Get(storeKey)
	if !ok {
		return nil, nil
	}

	var prof Profile
	if err := json.Unmarshal(raw, &prof); err != nil {
		return nil, errors.Wrap(err, "parse persisted profile")
	}
	return &prof, nil
}

// Save writes the full profile back under the profile key.
func (p *LocalPersister) Save(_ context.Context, prof Profile) error {
	data, err := json.Marshal(prof)
	if err != nil {
		return errors.Wrap(err, "marshal profile")
	}
	return p.store.Set(storeKey, data)
}

// Delete removes the persisted profile record.
func (p *LocalPersister) Delete(_ context.Context) error {
	return p.store.Remove(storeKey)
}
