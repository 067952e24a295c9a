// Package checkout implements the payment modal's state machine: selecting
// a payment method, validating its inputs, running the charge, and clearing
// the cart on success.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/cart"
	"github.com/agrochain/smarthub/internal/domain/order"
	"github.com/agrochain/smarthub/internal/forms"
	"github.com/agrochain/smarthub/internal/payment/card"
)

// State is the checkout flow's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateSelecting  State = "selecting-method"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateClosed     State = "closed"
)

// Method is a payment method tab in the modal.
type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "wallet"
	MethodOthers Method = "others"
)

var (
	// ErrNotSelecting is returned when an operation requires the modal to
	// be open on the method-selection view.
	ErrNotSelecting = errors.New("checkout is not selecting a method")
	// ErrSubmitInFlight is returned when a second submit (or a close) races
	// an in-progress one. At most one charge runs at a time.
	ErrSubmitInFlight = errors.New("a submit is already in flight")
	// ErrNoWalletSelected is returned when submitting the wallet method
	// without choosing a wallet.
	ErrNoWalletSelected = errors.New("no wallet selected")
	// ErrNoSubmitPath is returned for the informational "others" method,
	// which cannot be submitted.
	ErrNoSubmitPath = errors.New("selected method has no submit path")
	// ErrEmptyCart is returned when submitting with nothing to pay for.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError carries per-field messages when card validation fails.
// The flow stays on the selection view and the cart is untouched.
type ValidationError struct {
	Fields forms.Errors
}

func (e *ValidationError) Error() string { return "card details failed validation" }

// Charger runs the payment. Injectable so tests can substitute
// deterministic success or failure for the simulated transport.
type Charger interface {
	Charge(ctx context.Context, amount decimal.Decimal) error
}

// SimulatedCharger stands in for a real payment gateway: it waits a fixed
// delay and always succeeds. Declines and timeouts are deliberately out of
// scope for the mock.
type SimulatedCharger struct {
	Delay time.Duration
}

// Charge waits the configured delay, honoring context cancellation.
func (c *SimulatedCharger) Charge(ctx context.Context, _ decimal.Decimal) error {
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Flow drives one checkout session. All transitions go through the mutex;
// the submitting state doubles as the single-submit-in-flight guard.
type Flow struct {
	cart      *cart.Store
	charger   Charger
	orders    order.Repository
	sessionID string
	lg        *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	state    State
	method   Method
	cardForm card.Form
	wallet   string
}

// NewFlow creates a Flow in the idle state.
func NewFlow(c *cart.Store, charger Charger, orders order.Repository, sessionID string, lg *zap.Logger) *Flow {
	return &Flow{
		cart:      c,
		charger:   charger,
		orders:    orders,
		sessionID: sessionID,
		lg:        lg,
		now:       time.Now,
		state:     StateIdle,
		method:    MethodCard,
	}
}

// State returns the current lifecycle state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Open moves the flow onto the method-selection view. Reopening a closed
// or idle flow starts fresh on the card tab.
func (f *Flow) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSelecting:
		return nil
	}
	f.resetLocked()
	f.state = StateSelecting
	return nil
}

// SelectMethod switches the active payment method tab.
func (f *Flow) SelectMethod(m Method) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelecting {
		return ErrNotSelecting
	}
	f.method = m
	return nil
}

// SetCard replaces the draft card form.
func (f *Flow) SetCard(form card.Form) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelecting {
		return ErrNotSelecting
	}
	f.cardForm = form
	return nil
}

// SelectWallet chooses the wallet used for the wallet method.
func (f *Flow) SelectWallet(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelecting {
		return ErrNotSelecting
	}
	f.wallet = name
	return nil
}

// Submit validates the active method, runs the charge, records the order,
// and clears the cart. On validation failure the flow stays on the
// selection view with the cart untouched.
func (f *Flow) Submit(ctx context.Context) (*order.Order, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateSelecting:
	default:
		f.mu.Unlock()
		return nil, ErrNotSelecting
	}

	switch f.method {
	case MethodCard:
		if errs := f.cardForm.Validate(); !errs.Valid() {
			f.mu.Unlock()
			return nil, &ValidationError{Fields: errs}
		}
	case MethodWallet:
		if f.wallet == "" {
			f.mu.Unlock()
			return nil, ErrNoWalletSelected
		}
	default:
		f.mu.Unlock()
		return nil, ErrNoSubmitPath
	}

	lines := f.cart.Lines()
	if len(lines) == 0 {
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}

	f.state = StateSubmitting
	method := f.method
	f.mu.Unlock()

	total := f.cart.Total()
	if err := f.charger.Charge(ctx, total); err != nil {
		f.mu.Lock()
		f.state = StateSelecting
		f.mu.Unlock()
		return nil, errors.Wrap(err, "charge")
	}

	o := &order.Order{
		ID:        uuid.New().String(),
		Status:    order.StatusPending,
		Items:     toOrderItems(lines),
		Total:     total.Round(2),
		CreatedAt: f.now(),
	}
	if err := f.orders.Create(ctx, f.sessionID, o); err != nil {
		// The simulated charge cannot be refunded; log and surface.
		f.lg.Error("Failed to record order after charge", zap.Error(err))
		f.mu.Lock()
		f.state = StateSelecting
		f.mu.Unlock()
		return nil, errors.Wrap(err, "record order")
	}

	f.cart.Clear(ctx)

	f.mu.Lock()
	f.state = StateSuccess
	f.mu.Unlock()

	f.lg.Info("Checkout completed",
		zap.String("order_id", o.ID),
		zap.String("method", string(method)),
		zap.String("total", o.Total.String()),
	)
	return o, nil
}

// Close dismisses the modal, discarding all in-progress form values.
// Closing mid-submit is refused; the pending charge is not cancellable.
func (f *Flow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	f.resetLocked()
	f.state = StateClosed
	return nil
}

// resetLocked discards draft form values. Callers must hold f.mu.
func (f *Flow) resetLocked() {
	f.method = MethodCard
	f.cardForm = card.Form{}
	f.wallet = ""
}

func toOrderItems(lines []cart.Line) []order.Item {
	items := make([]order.Item, len(lines))
	for i, l := range lines {
		items[i] = order.Item{
			ProductID: l.ID,
			Name:      l.Name,
			Quantity:  l.Quantity,
		}
	}
	return items
}
