package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agrochain/smarthub/internal/domain/cart"
	"github.com/agrochain/smarthub/internal/domain/order"
	"github.com/agrochain/smarthub/internal/domain/product"
	"github.com/agrochain/smarthub/internal/payment/card"
)

type nopPersister struct{}

func (nopPersister) Load(context.Context) ([]cart.Line, error)  { return nil, nil }
func (nopPersister) Save(context.Context, []cart.Line) error    { return nil }

type memOrders struct {
	created []order.Order
	err     error
}

func (m *memOrders) Create(_ context.Context, _ string, o *order.Order) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *o)
	return nil
}

func (m *memOrders) List(context.Context, string) ([]order.Order, error) {
	return m.created, nil
}

func (m *memOrders) GetByID(context.Context, string, string) (*order.Order, error) {
	return nil, order.ErrNotFound
}

type stubCharger struct {
	err    error
	amount decimal.Decimal
}

func (c *stubCharger) Charge(_ context.Context, amount decimal.Decimal) error {
	c.amount = amount
	return c.err
}

func validCard() card.Form {
	return card.Form{
		Name:   "John Deo",
		Number: "4111 1111 1111 1111",
		Expiry: "01/28",
		CVV:    "123",
	}
}

func newTestFlow(t *testing.T, orders order.Repository, charger Charger) (*Flow, *cart.Store) {
	t.Helper()
	c := cart.NewStore(context.Background(), nopPersister{}, zap.NewNop())
	c.AddToCart(context.Background(), product.Product{
		ID:    1,
		Name:  "Cashew Nuts",
		Price: decimal.RequireFromString("1230"),
	})
	return NewFlow(c, charger, orders, "sess-1", zap.NewNop()), c
}

func TestFlow_HappyPathCard(t *testing.T) {
	orders := &memOrders{}
	charger := &stubCharger{}
	f, c := newTestFlow(t, orders, charger)

	assert.Equal(t, StateIdle, f.State())
	require.NoError(t, f.Open())
	require.NoError(t, f.SetCard(validCard()))

	o, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, f.State())

	assert.Equal(t, order.StatusPending, o.Status)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("1230")))
	assert.True(t, charger.amount.Equal(decimal.RequireFromString("1230")))
	require.Len(t, orders.created, 1)

	// Success empties the cart.
	assert.Empty(t, c.Lines())
}

func TestFlow_InvalidCardKeepsCart(t *testing.T) {
	orders := &memOrders{}
	f, c := newTestFlow(t, orders, &stubCharger{})

	require.NoError(t, f.Open())
	require.NoError(t, f.SetCard(card.Form{Name: "John Deo", Number: "42", Expiry: "01/28", CVV: "123"}))

	_, err := f.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "number")

	assert.Equal(t, StateSelecting, f.State())
	assert.Len(t, c.Lines(), 1)
	assert.Empty(t, orders.created)
}

func TestFlow_WalletRequiresSelection(t *testing.T) {
	f, _ := newTestFlow(t, &memOrders{}, &stubCharger{})

	require.NoError(t, f.Open())
	require.NoError(t, f.SelectMethod(MethodWallet))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoWalletSelected)

	require.NoError(t, f.SelectWallet("paypal"))
	_, err = f.Submit(context.Background())
	assert.NoError(t, err)
}

func TestFlow_OthersHasNoSubmitPath(t *testing.T) {
	f, _ := newTestFlow(t, &memOrders{}, &stubCharger{})

	require.NoError(t, f.Open())
	require.NoError(t, f.SelectMethod(MethodOthers))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoSubmitPath)
}

func TestFlow_EmptyCart(t *testing.T) {
	c := cart.NewStore(context.Background(), nopPersister{}, zap.NewNop())
	f := NewFlow(c, &stubCharger{}, &memOrders{}, "sess-1", zap.NewNop())

	require.NoError(t, f.Open())
	require.NoError(t, f.SetCard(validCard()))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFlow_ChargeFailureReturnsToSelecting(t *testing.T) {
	charger := &stubCharger{err: errors.New("gateway down")}
	f, c := newTestFlow(t, &memOrders{}, charger)

	require.NoError(t, f.Open())
	require.NoError(t, f.SetCard(validCard()))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateSelecting, f.State())
	assert.Len(t, c.Lines(), 1)
}

func TestFlow_CloseDiscardsDrafts(t *testing.T) {
	f, _ := newTestFlow(t, &memOrders{}, &stubCharger{})

	require.NoError(t, f.Open())
	require.NoError(t, f.SelectMethod(MethodWallet))
	require.NoError(t, f.SelectWallet("paypal"))
	require.NoError(t, f.Close())
	assert.Equal(t, StateClosed, f.State())

	// Reopening starts fresh on the card tab with the wallet forgotten.
	require.NoError(t, f.Open())
	require.NoError(t, f.SelectMethod(MethodWallet))
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoWalletSelected)
}

func TestFlow_SubmitRequiresOpenModal(t *testing.T) {
	f, _ := newTestFlow(t, &memOrders{}, &stubCharger{})

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotSelecting)

	assert.ErrorIs(t, f.SelectMethod(MethodCard), ErrNotSelecting)
	assert.ErrorIs(t, f.SetCard(validCard()), ErrNotSelecting)
}

func TestSimulatedCharger_HonorsContext(t *testing.T) {
	c := &SimulatedCharger{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Charge(ctx, decimal.Zero)
	assert.ErrorIs(t, err, context.Canceled)

	quick := &SimulatedCharger{Delay: time.Millisecond}
	assert.NoError(t, quick.Charge(context.Background(), decimal.Zero))
}
