package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/agrochain/smarthub/internal/domain/profile"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	writeProfile(w, http.StatusOK, rt.profile.Current())
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch profile.Patch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rt := h.runtime(r.Context(), sessionIDFrom(r.Context()))
	p := rt.profile.Update(r.Context(), patch)
	writeProfile(w, http.StatusOK, &p)
}

// writeProfile encodes the profile, or null after logout. The password is
// never echoed back.
func writeProfile(w http.ResponseWriter, status int, p *profile.Profile) {
	writeJSON(w, status, func(e *jx.Encoder) {
		if p == nil {
			e.Null()
			return
		}
		e.Obj(func(e *jx.Encoder) {
			e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
			e.Field("email", func(e *jx.Encoder) { e.Str(p.Email) })
			e.Field("profileImage", func(e *jx.Encoder) { e.Str(p.ProfileImage) })
			e.Field("currency", func(e *jx.Encoder) { e.Str(p.Currency) })
			e.Field("country", func(e *jx.Encoder) { e.Str(p.Country) })
			e.Field("address", func(e *jx.Encoder) { e.Str(p.Address) })
		})
	})
}
