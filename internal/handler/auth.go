package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/agrochain/smarthub/internal/domain/profile"
	"github.com/agrochain/smarthub/internal/forms"
)

// simulateAuthDelay mimics the network round-trip of a real auth backend.
// Authentication itself always succeeds once the form validates.
func (h *Handler) simulateAuthDelay(ctx context.Context) error {
	if h.deps.AuthDelay <= 0 {
		return nil
	}
	t := time.NewTimer(h.deps.AuthDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form forms.Login
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	if err := h.simulateAuthDelay(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "login interrupted")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	p := rt.profile.Update(r.Context(), profile.Patch{
		Name:  &form.FullName,
		Email: &form.Email,
	})
	writeProfile(w, http.StatusOK, &p)
}

func (h *Handler) signupBuyer(w http.ResponseWriter, r *http.Request) {
	var form forms.BuyerSignup
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	if err := h.simulateAuthDelay(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "signup interrupted")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	p := rt.profile.Update(r.Context(), profile.Patch{
		Name:  &form.FullName,
		Email: &form.Email,
	})
	writeProfile(w, http.StatusCreated, &p)
}

func (h *Handler) signupFarmer(w http.ResponseWriter, r *http.Request) {
	var form forms.FarmerSignup
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}
	if err := h.simulateAuthDelay(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "signup interrupted")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	p := rt.profile.Update(r.Context(), profile.Patch{
		Name:  &form.FullName,
		Email: &form.Email,
	})
	writeProfile(w, http.StatusCreated, &p)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	rt.profile.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var form forms.Contact
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, errs)
		return
	}

	// The storefront has no mail backend; acknowledging is the contract.
	writeJSON(w, http.StatusAccepted, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("status", func(e *jx.Encoder) { e.Str("received") })
		})
	})
}
