package store

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/delphine/shop/internal/domain"
	"github.com/delphine/shop/internal/shipping"
)

// Checkout coordinates a purchase across the stores: it snapshots the cart,
// resolves shipping for the destination, writes the order, debits stock,
// clears the cart and fires the confirmation email. The order is committed
// before the notification is attempted; a failed send is logged and does not
// roll anything back.
type Checkout struct {
	Cart     *Cart
	Catalog  *Catalog
	Orders   *Orders
	Identity *Identity
	Notifier domain.OrderNotifier
}

type CheckoutInput struct {
	Email          string                 `json:"email"`
	Name           string                 `json:"name"`
	Address        domain.ShippingAddress `json:"address"`
	ShippingRateID string                 `json:"shippingRateId"`
}

// Submit places the order and returns it, including the generated orderId the
// caller routes its confirmation view by.
func (c *Checkout) Submit(ctx context.Context, in CheckoutInput) (domain.Order, error) {
	items := c.Cart.Items()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	email, name := in.Email, in.Name
	if u, ok := c.Identity.Current(); ok {
		if email == "" {
			email = u.Email
		}
		if name == "" {
			name = u.Name
		}
	}
	if email == "" || name == "" {
		return domain.Order{}, ErrMissingContact
	}

	// The rate list depends on the destination; an id that is not in the
	// resolved list falls back to the default first option.
	rates := shipping.RatesFor(in.Address.Country)
	rate := rates[0]
	for _, r := range rates {
		if r.ID == in.ShippingRateID {
			rate = r
			break
		}
	}

	subtotal := c.Cart.Subtotal()
	tax := 0.0
	order := c.Orders.AddOrder(ctx, domain.Order{
		UserEmail:       email,
		UserName:        name,
		Items:           items,
		Subtotal:        subtotal,
		Shipping:        rate.Price,
		Tax:             tax,
		Total:           subtotal + rate.Price + tax,
		ShippingAddress: in.Address,
		ShippingMethod:  rate.ID,
		PaymentMethod:   domain.PaymentMethodCOD,
		PaymentStatus:   domain.PaymentStatusPaid,
		Status:          domain.OrderStatusProcessing,
	})

	// One decrement per distinct line, not per unit. Lines whose product was
	// deleted since being added are tolerated: the snapshot in the order is
	// authoritative.
	for _, it := range items {
		c.Catalog.IncrementSold(ctx, it.ProductID, it.Quantity)
	}
	c.Cart.Clear(ctx)

	go NotifyOrder(context.Background(), c.Notifier, domain.NotifyConfirmation, order)

	return order, nil
}

// NotifyOrder sends one order event through the gateway and logs the outcome.
// Fire-and-forget: no retry, no backoff, no idempotency key.
func NotifyOrder(ctx context.Context, n domain.OrderNotifier, event domain.NotifyEvent, order domain.Order) {
	if n == nil {
		return
	}
	res := n.Notify(ctx, event, order)
	switch {
	case res.Success && res.Skipped:
		log.Info().Str("order", order.OrderID).Str("event", string(event)).Msg("email skipped, gateway not configured")
	case res.Success:
		log.Info().Str("order", order.OrderID).Str("event", string(event)).Msg("email sent")
	default:
		log.Warn().Str("order", order.OrderID).Str("event", string(event)).Str("error", res.Error).Msg("email send failed")
	}
}
