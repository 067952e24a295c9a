package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/cart"
	"github.com/agrochain/smarthub/internal/domain/product"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	writeCart(w, rt)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"productId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.deps.Products.GetByID(r.Context(), req.ProductID)
	if errors.Is(err, product.ErrNotFound) {
		writeError(w, http.StatusUnprocessableEntity, "product not found")
		return
	}
	if err != nil {
		zctx.From(r.Context()).Error("Failed to resolve product for cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	rt.cart.AddToCart(r.Context(), *p)
	writeCart(w, rt)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	rt.cart.UpdateQuantity(r.Context(), id, req.Delta)
	writeCart(w, rt)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	rt.cart.RemoveFromCart(r.Context(), id)
	writeCart(w, rt)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	rt.cart.Clear(r.Context())
	writeCart(w, rt)
}

// writeCart responds with the full cart view: lines, item count, and total.
func writeCart(w http.ResponseWriter, rt *sessionRuntime) {
	lines := rt.cart.Lines()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("lines", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for i := range lines {
						encodeCartLine(e, lines[i])
					}
				})
			})
			e.Field("count", func(e *jx.Encoder) { e.Int(rt.cart.Count()) })
			e.Field("total", func(e *jx.Encoder) { encodeDecimal(e, rt.cart.Total()) })
		})
	})
}

func encodeCartLine(e *jx.Encoder, l cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("product", func(e *jx.Encoder) { encodeProduct(e, l.Product) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
	})
}
