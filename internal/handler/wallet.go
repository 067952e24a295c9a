package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/wallet"
)

func (h *Handler) getWallet(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r.Context())
	entries, err := h.deps.Wallet.List(r.Context(), sessionID)
	if err != nil {
		zctx.From(r.Context()).Error("Failed to list wallet entries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load wallet")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("balance", func(e *jx.Encoder) { encodeDecimal(e, wallet.Balance(entries)) })
			e.Field("transactions", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, entry := range entries {
						encodeWalletEntry(e, entry)
					}
				})
			})
		})
	})
}

func (h *Handler) depositWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      string `json:"amount"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a decimal number")
		return
	}
	if req.Description == "" {
		req.Description = "Deposit"
	}

	entry, err := wallet.NewEntry(uuid.NewString(), wallet.Credit, req.Description, amount.Round(2), h.now())
	if errors.Is(err, wallet.ErrInvalidAmount) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record deposit")
		return
	}

	sessionID := sessionIDFrom(r.Context())
	if err := h.deps.Wallet.Add(r.Context(), sessionID, entry); err != nil {
		zctx.From(r.Context()).Error("Failed to add wallet entry", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to record deposit")
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeWalletEntry(e, *entry)
	})
}

func encodeWalletEntry(e *jx.Encoder, entry wallet.Entry) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(entry.ID) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(string(entry.Kind)) })
		e.Field("description", func(e *jx.Encoder) { e.Str(entry.Description) })
		e.Field("amount", func(e *jx.Encoder) { encodeDecimal(e, entry.Signed()) })
		e.Field("createdAt", func(e *jx.Encoder) { encodeTime(e, entry.CreatedAt) })
	})
}
