// Package wallet holds the dashboard wallet: a balance derived from a
// credit/debit transaction history.
package wallet

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind distinguishes money entering the wallet from money leaving it.
type Kind string

const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

// ErrInvalidAmount is returned when a transaction amount is not positive.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// Entry is one wallet transaction. Amount is always stored non-negative;
// the sign shown to users is derived from Kind, so an entry can never
// contradict its own direction.
type Entry struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Signed returns the amount with the direction applied: positive for
// credits, negative for debits.
func (e Entry) Signed() decimal.Decimal {
	if e.Kind == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Repository defines persistence operations for wallet entries, scoped per
// session.
type Repository interface {
	Add(ctx context.Context, sessionID string, e *Entry) error
	List(ctx context.Context, sessionID string) ([]Entry, error)
}

// Balance folds the entries into the current wallet balance.
func Balance(entries []Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Signed())
	}
	return sum
}

// NewEntry validates and builds a transaction. The amount must be strictly
// positive; direction is carried by kind alone.
func NewEntry(id string, kind Kind, description string, amount decimal.Decimal, at time.Time) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Entry{
		ID:          id,
		Kind:        kind,
		Description: description,
		Amount:      amount,
		CreatedAt:   at,
	}, nil
}
