package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFrom(r.Context())
	items, err := h.deps.Notifications.List(r.Context(), sessionID)
	if err != nil {
		zctx.From(r.Context()).Error("Failed to list notifications", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, n := range items {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Str(n.ID) })
					e.Field("kind", func(e *jx.Encoder) { e.Str(string(n.Kind)) })
					e.Field("title", func(e *jx.Encoder) { e.Str(n.Title) })
					e.Field("body", func(e *jx.Encoder) { e.Str(n.Body) })
					e.Field("createdAt", func(e *jx.Encoder) { encodeTime(e, n.CreatedAt) })
				})
			}
		})
	})
}
