package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// sessionIDKey is the context key for the resolved session ID.
type sessionIDKey struct{}

// sessionIDFrom extracts the session ID placed by requireSession.
func sessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// createSession mints a fresh session and returns the bearer token. The
// token is shown exactly once; only its hash is stored.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	token, s, err := h.deps.Sessions.Create(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("Failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("token", func(e *jx.Encoder) { e.Str(token) })
			e.Field("expiresAt", func(e *jx.Encoder) { encodeTime(e, s.ExpiresAt) })
		})
	})
}

// requireSession resolves the bearer token into a session ID and stores it
// on the request context. Missing or unknown tokens get 401.
func (h *Handler) requireSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}

		s, err := h.deps.Sessions.Lookup(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDKey{}, s.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
