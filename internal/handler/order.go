package handler

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/order"
)

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r.Context())
	orders, err := h.deps.Orders.List(r.Context(), sessionID)
	if err != nil {
		zctx.From(r.Context()).Error("Failed to list orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	tab := order.Tab(r.URL.Query().Get("tab"))
	if tab == "" {
		tab = order.TabAll
	}
	filtered := order.Filter(orders, tab, r.URL.Query().Get("q"))

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range filtered {
				encodeOrder(e, filtered[i])
			}
		})
	})
}

func (h *Handler) orderTracking(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r.Context())
	o, err := h.deps.Orders.GetByID(r.Context(), sessionID, r.PathValue("id"))
	if errors.Is(err, order.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		zctx.From(r.Context()).Error("Failed to get order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	steps := order.Tracking(*o, h.now())
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("orderId", func(e *jx.Encoder) { e.Str(o.ID) })
			e.Field("steps", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, s := range steps {
						e.Obj(func(e *jx.Encoder) {
							e.Field("label", func(e *jx.Encoder) { e.Str(s.Label) })
							e.Field("status", func(e *jx.Encoder) { e.Str(string(s.Status)) })
						})
					}
				})
			})
		})
	})
}

// exportOrders streams the session's order history as an xlsx workbook.
func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r.Context())
	orders, err := h.deps.Orders.List(r.Context(), sessionID)
	if err != nil {
		zctx.From(r.Context()).Error("Failed to list orders for export", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export orders")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Date", "Status", "Items", "Total"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hd)
	}

	for row, o := range orders {
		itemCount := 0
		for _, it := range o.Items {
			itemCount += it.Quantity
		}
		values := []any{
			o.ID,
			o.CreatedAt.Format("2006-01-02"),
			string(o.Status),
			itemCount,
			o.Total.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "orders.xlsx"))
	if err := f.Write(w); err != nil {
		zctx.From(r.Context()).Error("Failed to write xlsx export", zap.Error(err))
	}
}

func encodeOrder(e *jx.Encoder, o order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("total", func(e *jx.Encoder) { encodeDecimal(e, o.Total) })
		e.Field("createdAt", func(e *jx.Encoder) { encodeTime(e, o.CreatedAt) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range o.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("productId", func(e *jx.Encoder) { e.Int(it.ProductID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
					})
				}
			})
		})
	})
}
