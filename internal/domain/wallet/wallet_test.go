package wallet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Signed(t *testing.T) {
	credit := Entry{Kind: Credit, Amount: decimal.RequireFromString("500.00")}
	assert.True(t, credit.Signed().Equal(decimal.RequireFromString("500.00")))

	debit := Entry{Kind: Debit, Amount: decimal.RequireFromString("100.00")}
	assert.True(t, debit.Signed().Equal(decimal.RequireFromString("-100.00")))
}

func TestBalance(t *testing.T) {
	entries := []Entry{
		{Kind: Credit, Amount: decimal.RequireFromString("500.00")},
		{Kind: Debit, Amount: decimal.RequireFromString("100.00")},
		{Kind: Credit, Amount: decimal.RequireFromString("370.00")},
		{Kind: Debit, Amount: decimal.RequireFromString("158.00")},
	}
	assert.True(t, Balance(entries).Equal(decimal.RequireFromString("612.00")))

	assert.True(t, Balance(nil).IsZero())
}

func TestNewEntry_RejectsNonPositiveAmounts(t *testing.T) {
	now := time.Now()

	// A deposit can never be recorded with a negative amount; direction
	// lives in the kind, not the number.
	_, err := NewEntry("t1", Credit, "Deposit", decimal.RequireFromString("-700.00"), now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewEntry("t2", Debit, "Withdrawal", decimal.Zero, now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	e, err := NewEntry("t3", Credit, "Deposit", decimal.RequireFromString("500.00"), now)
	require.NoError(t, err)
	assert.Equal(t, Credit, e.Kind)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("500.00")))
}
