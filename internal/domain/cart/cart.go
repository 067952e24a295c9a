// Package cart implements the shopping cart store: an ordered list of
// product lines with quantities, mirrored to a persistence backend on every
// change.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/product"
)

// Line is one product entry with an associated quantity. The full product
// record is duplicated into the line so a persisted cart can be rendered
// without a catalog lookup.
type Line struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Persister mirrors cart state to a durable backend. The store is the sole
// owner of the state; persistence is a side-effect mirror, not a second
// owner.
type Persister interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}

// Store holds the cart lines and enforces the cart invariants: quantities
// never go negative, and a product appears in at most one line. All
// mutations are serialized through a single mutex; persistence is
// last-write-wins with no cross-writer reconciliation.
type Store struct {
	persister Persister
	lg        *zap.Logger

	mu       sync.Mutex
	lines    []Line
	onChange []func()
}

// NewStore creates a Store and loads any previously persisted lines.
// A failed load (missing or malformed state) is logged and treated as an
// empty cart; it never propagates.
func NewStore(ctx context.Context, persister Persister, lg *zap.Logger) *Store {
	s := &Store{
		persister: persister,
		lg:        lg,
	}

	lines, err := persister.Load(ctx)
	if err != nil {
		lg.Warn("Failed to load persisted cart, starting empty", zap.Error(err))
		return s
	}
	s.lines = lines
	return s
}

// Subscribe registers fn to run after every state change. Callbacks run
// synchronously on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// AddToCart adds one unit of p. If a line for p already exists its quantity
// is incremented; otherwise a new line with quantity 1 is appended.
func (s *Store) AddToCart(ctx context.Context, p product.Product) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ID == p.ID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, Line{Product: p, Quantity: 1})
	}
	s.afterChange(ctx)
}

// UpdateQuantity adjusts the quantity of the line with the given product ID
// by delta, clamping at zero. A zero-quantity line is kept until explicitly
// removed. Unknown IDs are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id, delta int) {
	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ID == id {
			q := s.lines[i].Quantity + delta
			if q < 0 {
				q = 0
			}
			s.lines[i].Quantity = q
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.afterChange(ctx)
}

// RemoveFromCart deletes the line with the given product ID. Absent IDs are
// a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, id int) {
	s.mu.Lock()
	kept := s.lines[:0]
	removed := false
	for _, l := range s.lines {
		if l.ID == id {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.lines = kept
	s.afterChange(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.afterChange(ctx)
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the sum of quantities across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Total returns the sum of price x quantity across all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, l := range s.lines {
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// afterChange persists the full line list and fires change callbacks.
// Called with s.mu held; releases it.
func (s *Store) afterChange(ctx context.Context) {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	subs := s.onChange
	s.mu.Unlock()

	if err := s.persister.Save(ctx, lines); err != nil {
		s.lg.Error("Failed to persist cart", zap.Error(err))
	}
	for _, fn := range subs {
		fn()
	}
}
