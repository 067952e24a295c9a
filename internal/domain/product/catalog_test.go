package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrochain/smarthub/db"
)

func TestNewCatalog_SeedListing(t *testing.T) {
	c, err := NewCatalog(db.SeedProducts)
	require.NoError(t, err)

	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	// Ordered by ID.
	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
	}

	cashew := products[0]
	assert.Equal(t, "Premium Raw Cashew Nut", cashew.Name)
	assert.Equal(t, "Nigeria", cashew.Country)
	assert.True(t, cashew.Price.Equal(decimal.NewFromInt(1230)), "price: %s", cashew.Price)
	assert.Equal(t, "5 Tons", cashew.MOQ)
}

func TestCatalog_GetByID(t *testing.T) {
	c, err := NewCatalog(db.SeedProducts)
	require.NoError(t, err)

	p, err := c.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Raw Kolanut", p.Name)

	_, err = c.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_GetByIDs_SkipsUnknown(t *testing.T) {
	c, err := NewCatalog(db.SeedProducts)
	require.NoError(t, err)

	got, err := c.GetByIDs(context.Background(), []int{2, 99, 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 5, got[1].ID)
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	_, err := NewCatalog([]byte(`[{"id":1,"name":"a","price":1},{"id":1,"name":"b","price":2}]`))
	require.Error(t, err)
}

func TestNewCatalog_MalformedJSON(t *testing.T) {
	_, err := NewCatalog([]byte(`{oops`))
	require.Error(t, err)
}
