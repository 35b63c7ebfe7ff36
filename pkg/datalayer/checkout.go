package datalayer

import (
	"context"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// CheckoutModule emits checkout funnel events. It shares the cart module's
// accumulator so checkout state and cart state cannot drift apart.
type CheckoutModule struct {
	base *base
	cart *CartModule
}

// Start tracks entry into the checkout funnel. The caller-rendered items
// are the source of truth and are synced into the cart state; the user
// context is resupplied in full alongside the page context.
func (m *CheckoutModule) Start(ctx context.Context, items []format.CartItemInput, input CartInput, checkoutType string) (Event, error) {
	if err := validate.Check("checkoutType", validate.String(checkoutType, "checkoutType", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "checkout.start", err)
	}
	for _, item := range items {
		if err := validate.CartItem(item); err != nil {
			return nil, m.base.reject(ctx, "checkout.start", err)
		}
	}
	if err := validateCartIdentity(input); err != nil {
		return nil, m.base.reject(ctx, "checkout.start", err)
	}

	m.cart.acc.sync(items, input)
	synced, info := m.cart.acc.snapshot()

	payload := withDefault(m.base.pageView("checkout", "start"), Event{
		"checkout_type": checkoutType,
		"cart":          info,
		"cart_items":    formatCartItems(synced),
	})
	if user, ok := m.base.seq.User(); ok {
		payload["default"].(map[string]any)["user"] = user
	}

	return m.base.push(ctx, "checkout.start", "checkout_start", payload)
}

// Step tracks progression to a later checkout step (2 = delivery,
// 3 = payment, and so on).
func (m *CheckoutModule) Step(ctx context.Context, step int) (Event, error) {
	if err := validate.Check("step", validate.Number(step, "step", validate.NumberOpts{Integer: true, Positive: true})); err != nil {
		return nil, m.base.reject(ctx, "checkout.step", err)
	}

	_, info := m.cart.acc.snapshot()
	return m.base.push(ctx, "checkout.step", "checkout_step",
		withDefault(m.base.pageView("checkout", "step"), Event{
			"checkout_step": step,
			"cart":          info,
		}))
}
