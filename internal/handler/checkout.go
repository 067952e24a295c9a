package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/checkout"
	"github.com/agrochain/smarthub/internal/payment/card"
)

func (h *Handler) checkoutState(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("state", func(e *jx.Encoder) { e.Str(string(rt.flow.State())) })
		})
	})
}

func (h *Handler) openCheckout(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	if err := rt.flow.Open(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("state", func(e *jx.Encoder) { e.Str(string(rt.flow.State())) })
		})
	})
}

// submitCheckout carries the whole payment attempt in one request: the
// chosen method plus its inputs. The flow validates, charges, records the
// order, and clears the cart.
func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
		Card   *struct {
			Name   string `json:"name"`
			Number string `json:"number"`
			Expiry string `json:"expiry"`
			CVV    string `json:"cvv"`
		} `json:"card"`
		Wallet string `json:"wallet"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	flow := rt.flow

	if err := flow.SelectMethod(checkout.Method(req.Method)); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if req.Card != nil {
		form := card.Form{
			Name:   req.Card.Name,
			Number: req.Card.Number,
			Expiry: req.Card.Expiry,
			CVV:    req.Card.CVV,
		}
		if err := flow.SetCard(form); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}
	if req.Wallet != "" {
		if err := flow.SelectWallet(req.Wallet); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}

	o, err := flow.Submit(r.Context())
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			writeFieldErrors(w, verr.Fields)
		case errors.Is(err, checkout.ErrNoWalletSelected),
			errors.Is(err, checkout.ErrNoSubmitPath),
			errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, checkout.ErrSubmitInFlight),
			errors.Is(err, checkout.ErrNotSelecting):
			writeError(w, http.StatusConflict, err.Error())
		default:
			zctx.From(r.Context()).Error("Checkout submit failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeOrder(e, *o)
	})
}

func (h *Handler) closeCheckout(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	if err := rt.flow.Close(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
