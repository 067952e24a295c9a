package cart

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/agrochain/smarthub/internal/localstore"
)

// storeKey is the localstore key the cart persists under. The value is a
// JSON array of lines with full product fields plus quantity.
const storeKey = "smarthub_cart"

var _ Persister = (*LocalPersister)(nil)

// LocalPersister mirrors the cart into a localstore.Store, the file-backed
// analog of the storefront's browser local storage.
type LocalPersister struct {
	store *localstore.Store
}

// NewLocalPersister wraps the given localstore.
func NewLocalPersister(store *localstore.Store) *LocalPersister {
	return &LocalPersister{store: store}
}

// Load reads the persisted line list. A missing key yields an empty cart;
// a malformed value yields an error the cart store degrades on.
func (p *LocalPersister) Load(_ context.Context) ([]Line, error) {
	raw, ok := p.store.Get(storeKey)
	if !ok {
		return nil, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, errors.Wrap(err, "parse persisted cart")
	}
	return lines, nil
}

// Save writes the full line list back under the cart key.
func (p *LocalPersister) Save(_ context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return errors.Wrap(err, "marshal cart")
	}
	return p.store.Set(storeKey, data)
}
