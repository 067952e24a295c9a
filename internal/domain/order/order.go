// Package order holds order records, list filtering, and shipment tracking
// timelines for the dashboard.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusDelivered Status = "Delivered"
	StatusCanceled  Status = "Canceled"
)

// Item is a single line item in a placed order.
type Item struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// Order is a placed order as shown in the dashboard list.
type Order struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Repository defines persistence operations for orders, scoped per session.
type Repository interface {
	Create(ctx context.Context, sessionID string, o *Order) error
	List(ctx context.Context, sessionID string) ([]Order, error)
	GetByID(ctx context.Context, sessionID, id string) (*Order, error)
}

// Tab is a dashboard list filter.
type Tab string

const (
	TabAll      Tab = "all"
	TabActive   Tab = "active"
	TabPending  Tab = "pending"
	TabCanceled Tab = "canceled"
)

// Filter returns the orders matching the given tab and search query.
// The active tab covers everything not canceled; search matches on the
// order ID, case-insensitively.
func Filter(orders []Order, tab Tab, query string) []Order {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if !matchesTab(o.Status, tab) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(o.ID), query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesTab(s Status, tab Tab) bool {
	switch tab {
	case TabPending:
		return s == StatusPending
	case TabCanceled:
		return s == StatusCanceled
	case TabActive:
		return s == StatusPending || s == StatusDelivered
	default:
		return true
	}
}
