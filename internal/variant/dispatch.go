package variant

import (
	"context"
	"errors"

	"tire-service/internal/model"
)

// ErrNotOrderable is returned when checkout is attempted without an
// in-stock resolved variant. The storefront renders the same condition as a
// disabled button.
var ErrNotOrderable = errors.New("no in-stock variant selected")

// Cart is the external cart collaborator. It owns persistence and merging of
// repeated adds; the dispatcher only forwards.
type Cart interface {
	Add(ctx context.Context, product model.Product) error
}

// OrderInitiator hands a prepared order off to the outbound order channel
// and returns the handoff link for the client to follow
type OrderInitiator interface {
	Initiate(ctx context.Context, lines []OrderLine, total float64) (string, error)
}

// OrderLine is a single-item order record built at handoff time
type OrderLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Dispatcher gates checkout actions on the session's resolved variant and
// forwards to the cart and order collaborators. It never retries; collaborator
// failures are surfaced as-is.
type Dispatcher struct {
	Cart   Cart
	Orders OrderInitiator
}

// AddToCart forwards the resolved variant to the cart and raises the
// session's transient confirmation flag, which self-clears and closes the
// session after its TTL. Returns ErrNotOrderable when there is no in-stock
// resolved variant.
func (d *Dispatcher) AddToCart(ctx context.Context, s *Session) error {
	resolved := s.orderable()
	if resolved == nil {
		return ErrNotOrderable
	}
	if err := d.Cart.Add(ctx, *resolved); err != nil {
		return err
	}
	s.confirmAdded()
	return nil
}

// OrderNow builds a single-line order from the resolved variant, hands it to
// the order initiator and closes the session immediately, with no
// confirmation delay. The session closes even when the initiator fails.
func (d *Dispatcher) OrderNow(ctx context.Context, s *Session) (string, error) {
	resolved := s.orderable()
	if resolved == nil {
		return "", ErrNotOrderable
	}

	lines := []OrderLine{{
		ProductID: resolved.ID,
		Name:      resolved.Name,
		Quantity:  1,
		Price:     resolved.Price,
	}}
	total := resolved.Price * float64(lines[0].Quantity)

	link, err := d.Orders.Initiate(ctx, lines, total)
	s.Close()
	return link, err
}
