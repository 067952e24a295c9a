package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/product"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.deps.Products.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("Failed to list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range products {
				encodeProduct(e, products[i])
			}
		})
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "product id must be an integer")
		return
	}

	p, err := h.deps.Products.GetByID(r.Context(), id)
	if errors.Is(err, product.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		zctx.From(r.Context()).Error("Failed to get product", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProduct(e, *p)
	})
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("country", func(e *jx.Encoder) { e.Str(p.Country) })
		e.Field("price", func(e *jx.Encoder) { encodeDecimal(e, p.Price) })
		e.Field("originalPrice", func(e *jx.Encoder) { encodeDecimal(e, p.OriginalPrice) })
		e.Field("unit", func(e *jx.Encoder) { e.Str(p.Unit) })
		e.Field("image", func(e *jx.Encoder) { e.Str(p.Image) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock) })
		e.Field("rating", func(e *jx.Encoder) { e.Float64(p.Rating) })
		e.Field("reviewsCount", func(e *jx.Encoder) { e.Int(p.ReviewsCount) })
		e.Field("certification", func(e *jx.Encoder) { e.Str(p.Certification) })
		e.Field("sku", func(e *jx.Encoder) { e.Str(p.SKU) })
		e.Field("brand", func(e *jx.Encoder) { e.Str(p.Brand) })
		e.Field("moq", func(e *jx.Encoder) { e.Str(p.MOQ) })
		e.Field("grade", func(e *jx.Encoder) { e.Str(p.Grade) })
		e.Field("packaging", func(e *jx.Encoder) { e.Str(p.Packaging) })
	})
}
