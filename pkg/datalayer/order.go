package datalayer

import (
	"context"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// Geo locates an order's destination.
type Geo struct {
	State   string `json:"state"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// Payment is one payment applied to an order. An order may carry several
// (e.g. a card payment plus loyalty points).
type Payment struct {
	Type        string  `json:"type"`
	Method      string  `json:"method"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status,omitempty"`
	PointsTotal int     `json:"points_total,omitempty"`
}

// Delivery describes how an order is fulfilled.
type Delivery struct {
	Type   string `json:"type"`
	Method string `json:"method"`
}

// Shipping carries the shipping charge split.
type Shipping struct {
	Base float64 `json:"base"`
	GST  float64 `json:"gst"`
}

// OrderInput is the confirmed-order payload for the order_success event.
type OrderInput struct {
	OrderID          string    `json:"orderId"`
	Currency         string    `json:"currency"`
	CheckoutType     string    `json:"checkout_type"`
	NewsletterSignup bool      `json:"newsletter_signup"`
	Geo              Geo       `json:"geo"`
	Payments         []Payment `json:"payments"`
	Delivery         Delivery  `json:"delivery"`
	Shipping         Shipping  `json:"shipping"`
	Total            float64   `json:"total"`
	Revenue          float64   `json:"revenue"`
	Tax              float64   `json:"tax"`
}

// OrderModule emits order confirmation events.
type OrderModule struct {
	base *base
	cart *CartModule
}

// Success tracks a confirmed order. The purchased items replace the cart
// state (the cart the order consumed is the final word on its contents).
func (m *OrderModule) Success(ctx context.Context, order OrderInput, items []format.CartItemInput, input CartInput) (Event, error) {
	if err := validate.Check("orderData",
		validate.String(order.OrderID, "orderId", validate.StringOpts{}),
		validate.String(order.Currency, "currency", validate.StringOpts{}),
		validate.Number(order.Total, "total", validate.NumberOpts{Positive: true}),
	); err != nil {
		return nil, m.base.reject(ctx, "order.success", err)
	}
	for _, item := range items {
		if err := validate.CartItem(item); err != nil {
			return nil, m.base.reject(ctx, "order.success", err)
		}
	}
	if err := validateCartIdentity(input); err != nil {
		return nil, m.base.reject(ctx, "order.success", err)
	}

	order.Geo.State = format.Normalize(order.Geo.State)
	order.Geo.City = format.Normalize(order.Geo.City)

	m.cart.acc.sync(items, input)
	synced, info := m.cart.acc.snapshot()

	return m.base.push(ctx, "order.success", "order_success",
		withDefault(m.base.pageView("order", "success"), Event{
			"order":      order,
			"cart":       info,
			"cart_items": formatCartItems(synced),
		}))
}
