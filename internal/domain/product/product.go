package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents an export listing in the catalog. Products are seeded
// once and never mutated at runtime.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Country       string          `json:"country"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Unit          string          `json:"unit"`
	Image         string          `json:"image"`
	Description   string          `json:"description"`
	Stock         int             `json:"stock"`
	Rating        float64         `json:"rating"`
	ReviewsCount  int             `json:"reviewsCount"`
	Certification string          `json:"certification"`
	SKU           string          `json:"sku"`
	Brand         string          `json:"brand"`
	MOQ           string          `json:"moq"`
	Grade         string          `json:"grade"`
	Packaging     string          `json:"packaging"`
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	GetByIDs(ctx context.Context, ids []int) ([]Product, error)
}
