package product

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/go-faster/errors"
)

var _ Repository = (*Catalog)(nil)

// Catalog is an in-memory Repository seeded from a static JSON listing.
// It backs single-node deployments and tests; server deployments use the
// PostgreSQL repository instead.
type Catalog struct {
	byID  map[int]Product
	order []int
}

// NewCatalog parses the given JSON product listing into a Catalog.
func NewCatalog(data []byte) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "parse product listing")
	}

	c := &Catalog{
		byID:  make(map[int]Product, len(products)),
		order: make([]int, 0, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	sort.Ints(c.order)
	return c, nil
}

// List returns all products ordered by ID.
func (c *Catalog) List(_ context.Context) ([]Product, error) {
	out := make([]Product, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id]
	}
	return out, nil
}

// GetByID returns a single product, or ErrNotFound.
func (c *Catalog) GetByID(_ context.Context, id int) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// GetByIDs returns the products matching any of the given IDs. Unknown IDs
// are skipped; callers that care must compare lengths.
func (c *Catalog) GetByIDs(_ context.Context, ids []int) ([]Product, error) {
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
