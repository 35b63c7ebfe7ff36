package datalayer

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/observability"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// Cart is the aggregate carried on cart-class events.
type Cart struct {
	CartID       string `json:"cartId"`
	QuoteID      string `json:"quoteId"`
	CartQuantity string `json:"cart_quantity"`
	CartTotal    string `json:"cart_total"`
}

// CartInput supplies the cart identity. At least one of CartID or QuoteID
// must be set; the accumulator stores whichever is given and defaults the
// other to "".
type CartInput struct {
	CartID  string
	QuoteID string
}

// accumulator holds the ordered cart line items (unique by child_sku) and
// the derived aggregate. It persists across calls within a session.
type accumulator struct {
	mu    sync.Mutex
	items []format.CartItemInput
	info  Cart
}

func newAccumulator() *accumulator {
	return &accumulator{
		info: Cart{CartQuantity: "0", CartTotal: "0.00"},
	}
}

// add merges into an existing line by child_sku (incrementing quantity) or
// appends a new line. Duplicate SKUs are an explicit merge policy, not an
// error.
func (a *accumulator) add(item format.CartItemInput) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.items {
		if a.items[i].ChildSKU == item.ChildSKU {
			qty := item.Qty
			if qty == 0 {
				qty = 1
			}
			a.items[i].Qty += qty
			a.recalc()
			return
		}
	}

	a.items = append(a.items, item)
	a.recalc()
}

// remove deletes the line with the given SKU, returning the removed item.
// ok is false when no such line exists.
func (a *accumulator) remove(childSKU string) (removed format.CartItemInput, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.items {
		if a.items[i].ChildSKU == childSKU {
			removed = a.items[i]
			a.items = append(a.items[:i], a.items[i+1:]...)
			a.recalc()
			return removed, true
		}
	}
	return format.CartItemInput{}, false
}

// update overwrites the quantity of the line with the given SKU.
func (a *accumulator) update(childSKU string, qty int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.items {
		if a.items[i].ChildSKU == childSKU {
			a.items[i].Qty = qty
			a.recalc()
			return true
		}
	}
	return false
}

// sync wholesale-replaces the line items and cart identity. Used when a
// view event renders server-fetched cart state that is the source of truth.
func (a *accumulator) sync(items []format.CartItemInput, input CartInput) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items = make([]format.CartItemInput, len(items))
	copy(a.items, items)
	a.info.CartID = input.CartID
	a.info.QuoteID = input.QuoteID
	a.recalc()
}

// recalc recomputes the aggregate. Callers must hold the mutex.
func (a *accumulator) recalc() {
	quantity := 0
	total := 0.0
	for _, item := range a.items {
		quantity += item.Qty
		total += item.ListedPrice * float64(item.Qty)
	}
	a.info.CartQuantity = strconv.Itoa(quantity)
	a.info.CartTotal = fmt.Sprintf("%.2f", total)
}

func (a *accumulator) snapshot() ([]format.CartItemInput, Cart) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]format.CartItemInput, len(a.items))
	copy(items, a.items)
	return items, a.info
}

// CartModule emits cart events and owns the session cart state.
type CartModule struct {
	base *base
	acc  *accumulator
}

// Add merges the item into the cart and tracks a cart_add event carrying
// the added line.
func (m *CartModule) Add(ctx context.Context, in format.CartItemInput) (Event, error) {
	if err := validate.CartItem(in); err != nil {
		return nil, m.base.reject(ctx, "cart.add", err)
	}

	m.acc.add(in)

	return m.base.push(ctx, "cart.add", "cart_add",
		withDefault(pageNamed("cart", "add", "add-to-cart"), Event{
			"cart_items": []format.CartItem{format.FormatCartItem(in)},
		}))
}

// Remove deletes the line with the given SKU and tracks a cart_remove
// event. Removing an absent SKU is a logged no-op: the UI may already
// reflect a state the cart never reached.
func (m *CartModule) Remove(ctx context.Context, childSKU string) (Event, error) {
	if err := validate.Check("childSku", validate.String(childSKU, "childSku", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "cart.remove", err)
	}

	removed, ok := m.acc.remove(childSKU)
	if !ok {
		observability.LogCartMiss(m.base.logger, "cart.remove", childSKU)
		return nil, &dlerrors.NotFoundError{ChildSKU: childSKU}
	}

	items, info := m.acc.snapshot()

	// The trailing nil marks the shrunken list for consumers diffing
	// against the pre-removal state.
	cartItems := make([]any, 0, len(items)+1)
	for _, item := range items {
		cartItems = append(cartItems, format.FormatCartItem(item))
	}
	cartItems = append(cartItems, nil)

	return m.base.push(ctx, "cart.remove", "cart_remove",
		withDefault(pageNamed("cart", "remove", "remove-from-cart"), Event{
			"cart_item_removed": format.FormatCartItem(removed),
			"cart_items":        cartItems,
			"cart":              info,
		}))
}

// Update overwrites the quantity of the line with the given SKU and tracks
// a cart_update event. Updating an absent SKU is a logged no-op.
func (m *CartModule) Update(ctx context.Context, childSKU string, qty int) (Event, error) {
	if err := validate.Check("cartUpdate",
		validate.String(childSKU, "childSku", validate.StringOpts{}),
		validate.Number(qty, "quantity", validate.NumberOpts{Integer: true, Positive: true}),
	); err != nil {
		return nil, m.base.reject(ctx, "cart.update", err)
	}

	if !m.acc.update(childSKU, qty) {
		observability.LogCartMiss(m.base.logger, "cart.update", childSKU)
		return nil, &dlerrors.NotFoundError{ChildSKU: childSKU}
	}

	items, info := m.acc.snapshot()

	return m.base.push(ctx, "cart.update", "cart_update",
		withDefault(pageNamed("cart", "update", "update-cart-item-qty"), Event{
			"cart_items": formatCartItems(items),
			"cart":       info,
		}))
}

// MiniView tracks the mini-cart overlay, syncing the cart state from the
// caller-rendered items.
func (m *CartModule) MiniView(ctx context.Context, items []format.CartItemInput, input CartInput) (Event, error) {
	if err := m.syncFromView(ctx, "cart.miniView", items, input); err != nil {
		return nil, err
	}

	synced, info := m.acc.snapshot()
	return m.base.push(ctx, "cart.miniView", "cart_view-mini",
		withDefault(pageNamed("cart", "view-mini", "view-mini-cart"), Event{
			"cart_items": formatCartItems(synced),
			"cart":       info,
		}))
}

// FullView tracks the full cart page, syncing the cart state from the
// caller-rendered items.
func (m *CartModule) FullView(ctx context.Context, items []format.CartItemInput, input CartInput) (Event, error) {
	if err := m.syncFromView(ctx, "cart.fullView", items, input); err != nil {
		return nil, err
	}

	synced, info := m.acc.snapshot()
	return m.base.push(ctx, "cart.fullView", "cart_view-full",
		withDefault(pageRef("cart", "view-full"), Event{
			"cart_items": formatCartItems(synced),
			"cart":       info,
		}))
}

// Items returns a copy of the current cart line items.
func (m *CartModule) Items() []format.CartItemInput {
	items, _ := m.acc.snapshot()
	return items
}

// Info returns the current cart aggregate.
func (m *CartModule) Info() Cart {
	_, info := m.acc.snapshot()
	return info
}

func (m *CartModule) syncFromView(ctx context.Context, operation string, items []format.CartItemInput, input CartInput) error {
	for _, item := range items {
		if err := validate.CartItem(item); err != nil {
			return m.base.reject(ctx, operation, err)
		}
	}
	if err := validateCartIdentity(input); err != nil {
		return m.base.reject(ctx, operation, err)
	}

	m.acc.sync(items, input)
	return nil
}

// validateCartIdentity enforces that at least one of cartId/quoteId is set.
func validateCartIdentity(input CartInput) error {
	if input.CartID == "" && input.QuoteID == "" {
		verr := &dlerrors.ValidationError{Param: "cartInput"}
		verr.AddMessage("cartId or quoteId is required")
		return verr
	}
	return nil
}

func formatCartItems(items []format.CartItemInput) []format.CartItem {
	formatted := make([]format.CartItem, len(items))
	for i, item := range items {
		formatted[i] = format.FormatCartItem(item)
	}
	return formatted
}
