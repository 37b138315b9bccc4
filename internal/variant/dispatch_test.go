package variant

import (
	"context"
	"errors"
	"testing"
	"time"

	"tire-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	added []model.Product
	err   error
}

func (f *fakeCart) Add(_ context.Context, p model.Product) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, p)
	return nil
}

type fakeInitiator struct {
	lines []OrderLine
	total float64
	calls int
	err   error
}

func (f *fakeInitiator) Initiate(_ context.Context, lines []OrderLine, total float64) (string, error) {
	f.calls++
	f.lines = lines
	f.total = total
	if f.err != nil {
		return "", f.err
	}
	return "https://wa.me/5215512345678?text=pedido", nil
}

func openedSession(t *testing.T, catalog []model.Product, base model.Product) *Session {
	t.Helper()
	s := NewSession(50 * time.Millisecond)
	s.Open(base, catalog)
	return s
}

func TestAddToCartForwardsResolvedVariant(t *testing.T) {
	catalog := roadKingCatalog()
	s := openedSession(t, catalog, catalog[0])
	fc := &fakeCart{}
	d := &Dispatcher{Cart: fc, Orders: &fakeInitiator{}}

	err := d.AddToCart(context.Background(), s)

	require.NoError(t, err)
	require.Len(t, fc.added, 1)
	assert.Equal(t, uint(1), fc.added[0].ID)
	assert.True(t, s.State().Added, "confirmation flag raised after a successful add")
}

func TestAddToCartRefusedWithoutResolution(t *testing.T) {
	catalog := roadKingCatalog()
	s := openedSession(t, catalog, catalog[0])
	require.NoError(t, s.EditDimension(DimensionWidth, "215")) // mixed triple, no match

	fc := &fakeCart{}
	d := &Dispatcher{Cart: fc, Orders: &fakeInitiator{}}

	err := d.AddToCart(context.Background(), s)

	assert.ErrorIs(t, err, ErrNotOrderable)
	assert.Empty(t, fc.added)
	assert.False(t, s.State().Added)
}

func TestAddToCartRefusedForOutOfStockVariant(t *testing.T) {
	catalog := roadKingCatalog()
	s := openedSession(t, catalog, catalog[1]) // stock 0

	fc := &fakeCart{}
	d := &Dispatcher{Cart: fc, Orders: &fakeInitiator{}}

	err := d.AddToCart(context.Background(), s)

	assert.ErrorIs(t, err, ErrNotOrderable)
	assert.Empty(t, fc.added)
}

func TestAddToCartRefusedOnClosedSession(t *testing.T) {
	d := &Dispatcher{Cart: &fakeCart{}, Orders: &fakeInitiator{}}

	err := d.AddToCart(context.Background(), NewSession(time.Second))

	assert.ErrorIs(t, err, ErrNotOrderable)
}

func TestAddToCartForwardsCollaboratorError(t *testing.T) {
	catalog := roadKingCatalog()
	s := openedSession(t, catalog, catalog[0])

	boom := errors.New("cart rejected")
	d := &Dispatcher{Cart: &fakeCart{err: boom}, Orders: &fakeInitiator{}}

	err := d.AddToCart(context.Background(), s)

	assert.ErrorIs(t, err, boom)
	assert.False(t, s.State().Added, "no confirmation on a failed add")
	assert.True(t, s.State().Open, "session stays open on a failed add")
}

func TestOrderNowBuildsSingleLineOrder(t *testing.T) {
	catalog := []model.Product{
		tire(7, "City Go", "Acme", "185", "65", "R14", 45.50, 8),
	}
	s := openedSession(t, catalog, catalog[0])
	fi := &fakeInitiator{}
	d := &Dispatcher{Cart: &fakeCart{}, Orders: fi}

	link, err := d.OrderNow(context.Background(), s)

	require.NoError(t, err)
	assert.NotEmpty(t, link)
	require.Len(t, fi.lines, 1)
	assert.Equal(t, OrderLine{ProductID: 7, Name: "City Go", Quantity: 1, Price: 45.50}, fi.lines[0])
	assert.Equal(t, 45.50, fi.total)
	assert.False(t, s.State().Open, "order-now closes the session immediately")
}

func TestOrderNowRefusedWithoutStock(t *testing.T) {
	catalog := roadKingCatalog()
	s := openedSession(t, catalog, catalog[1]) // stock 0
	fi := &fakeInitiator{}
	d := &Dispatcher{Cart: &fakeCart{}, Orders: fi}

	_, err := d.OrderNow(context.Background(), s)

	assert.ErrorIs(t, err, ErrNotOrderable)
	assert.Zero(t, fi.calls)
	assert.True(t, s.State().Open, "a refused order leaves the session alone")
}

func TestOrderNowClosesEvenWhenInitiatorFails(t *testing.T) {
	catalog := roadKingCatalog()
	s := openedSession(t, catalog, catalog[0])

	boom := errors.New("channel down")
	d := &Dispatcher{Cart: &fakeCart{}, Orders: &fakeInitiator{err: boom}}

	_, err := d.OrderNow(context.Background(), s)

	assert.ErrorIs(t, err, boom)
	assert.False(t, s.State().Open)
}

// The end-to-end storefront scenario: open on an in-stock variant, cross the
// dimensions, then come back and buy.
func TestSelectionScenarioRoadKing(t *testing.T) {
	catalog := roadKingCatalog()
	s := NewSession(50 * time.Millisecond)

	s.Open(catalog[0], catalog)
	state := s.State()
	require.NotNil(t, state.Resolved)
	assert.Equal(t, LabelLowStock, state.Stock.Label)

	// mixing the second variant's width with the first's profile/diameter
	// disables checkout
	require.NoError(t, s.EditDimension(DimensionWidth, "215"))
	state = s.State()
	assert.Nil(t, state.Resolved)
	assert.Nil(t, state.Stock)

	fc := &fakeCart{}
	d := &Dispatcher{Cart: fc, Orders: &fakeInitiator{}}
	assert.ErrorIs(t, d.AddToCart(context.Background(), s), ErrNotOrderable)

	// back to a valid triple, the add goes through
	require.NoError(t, s.EditDimension(DimensionWidth, "205"))
	require.NoError(t, d.AddToCart(context.Background(), s))
	require.Len(t, fc.added, 1)
	assert.Equal(t, 80.0, fc.added[0].Price)
}
