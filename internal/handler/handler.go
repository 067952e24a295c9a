// Package handler exposes the storefront over HTTP: catalog, cart, profile,
// auth, checkout, orders, wallet, and notifications. Responses are encoded
// with jx; request bodies are small and decoded with encoding/json.
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/cart"
	"github.com/agrochain/smarthub/internal/domain/checkout"
	"github.com/agrochain/smarthub/internal/domain/notification"
	"github.com/agrochain/smarthub/internal/domain/order"
	"github.com/agrochain/smarthub/internal/domain/product"
	"github.com/agrochain/smarthub/internal/domain/profile"
	"github.com/agrochain/smarthub/internal/domain/wallet"
	"github.com/agrochain/smarthub/internal/session"
)

// Deps carries everything the handlers need. Persister factories are
// injected so server mode binds pgx persisters while tests bind in-memory
// ones.
type Deps struct {
	Products         product.Repository
	Orders           order.Repository
	Wallet           wallet.Repository
	Notifications    notification.Repository
	Sessions         session.Store
	CartPersister    func(sessionID string) cart.Persister
	ProfilePersister func(sessionID string) profile.Persister
	Charger          checkout.Charger

	// AuthDelay is the simulated network latency for login and signup.
	AuthDelay time.Duration

	Logger *zap.Logger
}

// Handler routes storefront requests. Per-session state (cart, profile,
// checkout flow) is materialized lazily and kept for the process lifetime.
type Handler struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	runtimes map[string]*sessionRuntime
}

// sessionRuntime is the stateful trio owned by one session.
type sessionRuntime struct {
	cart    *cart.Store
	profile *profile.Store
	flow    *checkout.Flow
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		deps:     deps,
		now:      time.Now,
		runtimes: make(map[string]*sessionRuntime),
	}
}

// runtime returns the session's stores, creating them on first use. Creation
// loads persisted cart and profile state.
func (h *Handler) runtime(ctx context.Context, sessionID string) *sessionRuntime {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rt, ok := h.runtimes[sessionID]; ok {
		return rt
	}

	lg := h.deps.Logger.With(zap.String("session_id", sessionID))
	cartStore := cart.NewStore(ctx, h.deps.CartPersister(sessionID), lg)
	rt := &sessionRuntime{
		cart:    cartStore,
		profile: profile.NewStore(ctx, h.deps.ProfilePersister(sessionID), lg),
		flow:    checkout.NewFlow(cartStore, h.deps.Charger, h.deps.Orders, sessionID, lg),
	}
	h.runtimes[sessionID] = rt
	return rt
}

// Routes builds the API mux. Session-scoped routes are wrapped with the
// bearer-token middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session", h.createSession)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("POST /api/contact", h.submitContact)

	mux.Handle("POST /api/auth/login", h.requireSession(h.login))
	mux.Handle("POST /api/auth/signup/buyer", h.requireSession(h.signupBuyer))
	mux.Handle("POST /api/auth/signup/farmer", h.requireSession(h.signupFarmer))
	mux.Handle("POST /api/auth/logout", h.requireSession(h.logout))

	mux.Handle("GET /api/cart", h.requireSession(h.getCart))
	mux.Handle("POST /api/cart/items", h.requireSession(h.addCartItem))
	mux.Handle("PATCH /api/cart/items/{id}", h.requireSession(h.updateCartItem))
	mux.Handle("DELETE /api/cart/items/{id}", h.requireSession(h.removeCartItem))
	mux.Handle("DELETE /api/cart", h.requireSession(h.clearCart))

	mux.Handle("GET /api/profile", h.requireSession(h.getProfile))
	mux.Handle("PATCH /api/profile", h.requireSession(h.updateProfile))

	mux.Handle("GET /api/checkout", h.requireSession(h.checkoutState))
	mux.Handle("POST /api/checkout/open", h.requireSession(h.openCheckout))
	mux.Handle("POST /api/checkout/submit", h.requireSession(h.submitCheckout))
	mux.Handle("POST /api/checkout/close", h.requireSession(h.closeCheckout))

	mux.Handle("GET /api/orders", h.requireSession(h.listOrders))
	mux.Handle("GET /api/orders/export", h.requireSession(h.exportOrders))
	mux.Handle("GET /api/orders/{id}/tracking", h.requireSession(h.orderTracking))

	mux.Handle("GET /api/wallet", h.requireSession(h.getWallet))
	mux.Handle("POST /api/wallet/deposit", h.requireSession(h.depositWallet))

	mux.Handle("GET /api/notifications", h.requireSession(h.listNotifications))

	return mux
}
