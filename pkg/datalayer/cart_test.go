package datalayer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/queue"
)

func newTestLayer(t *testing.T) (*DataLayer, *queue.MemoryQueue) {
	t.Helper()
	q := queue.NewMemory()
	dl := New(WithQueue(q), WithEnvironment(testEnv()))
	require.NoError(t, dl.Init(testSite()))
	return dl, q
}

func cartItem(sku string, qty int, listed float64) format.CartItemInput {
	return format.CartItemInput{
		ProductInput: format.ProductInput{
			Brand:          "Nike",
			Category:       []string{"Run"},
			ChildSKU:       sku,
			Color:          "Red",
			FullPrice:      listed + 5,
			Gender:         "Men",
			ListedPrice:    listed,
			Name:           "Air X",
			ParentCategory: "Footwear",
			ParentSKU:      "p-" + sku,
			SKUAvailable:   true,
		},
		Qty:       qty,
		Size:      "9",
		SKUBySize: sku + "-9",
	}
}

func TestCartInitialState(t *testing.T) {
	dl, _ := newTestLayer(t)

	info := dl.Cart.Info()
	assert.Equal(t, "0", info.CartQuantity)
	assert.Equal(t, "0.00", info.CartTotal)
	assert.Empty(t, dl.Cart.Items())
}

func TestCartAddMergesDuplicateSKU(t *testing.T) {
	dl, _ := newTestLayer(t)
	ctx := context.Background()

	_, err := dl.Cart.Add(ctx, cartItem("sku-1", 2, 10))
	require.NoError(t, err)
	_, err = dl.Cart.Add(ctx, cartItem("sku-1", 3, 10))
	require.NoError(t, err)

	items := dl.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)

	info := dl.Cart.Info()
	assert.Equal(t, "5", info.CartQuantity)
	assert.Equal(t, "50.00", info.CartTotal)
}

func TestCartAddEmitsEvent(t *testing.T) {
	dl, _ := newTestLayer(t)

	envelope, err := dl.Cart.Add(context.Background(), cartItem("sku-1", 1, 10))
	require.NoError(t, err)

	assert.Equal(t, "cart_add", envelope["event"])

	def := defaultBlock(t, envelope)
	page, ok := def["page"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cart", page["type"])
	assert.Equal(t, "add", page["action"])
	assert.Equal(t, "add-to-cart", page["name"])

	cartItems, ok := envelope["cart_items"].([]format.CartItem)
	require.True(t, ok)
	require.Len(t, cartItems, 1)
	assert.Equal(t, "sku-1", cartItems[0].ChildSKU)
	assert.Equal(t, "nike", cartItems[0].Brand)
}

func TestCartAddRejectsInvalidItem(t *testing.T) {
	dl, q := newTestLayer(t)

	_, err := dl.Cart.Add(context.Background(), format.CartItemInput{})

	var verr *dlerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, dl.Cart.Items(), "rejected item must not enter the cart")

	events := queuedEvents(t, q)
	assert.Empty(t, events, "rejected input must not emit")
}

func TestCartRemove(t *testing.T) {
	dl, _ := newTestLayer(t)
	ctx := context.Background()

	_, err := dl.Cart.Add(ctx, cartItem("sku-1", 2, 10))
	require.NoError(t, err)
	_, err = dl.Cart.Add(ctx, cartItem("sku-2", 1, 20))
	require.NoError(t, err)

	envelope, err := dl.Cart.Remove(ctx, "sku-1")
	require.NoError(t, err)

	assert.Equal(t, "cart_remove", envelope["event"])

	removed, ok := envelope["cart_item_removed"].(format.CartItem)
	require.True(t, ok)
	assert.Equal(t, "sku-1", removed.ChildSKU)

	// The remaining lines plus a trailing null marking the shrink.
	cartItems, ok := envelope["cart_items"].([]any)
	require.True(t, ok)
	require.Len(t, cartItems, 2)
	assert.Nil(t, cartItems[len(cartItems)-1])

	info := dl.Cart.Info()
	assert.Equal(t, "1", info.CartQuantity)
	assert.Equal(t, "20.00", info.CartTotal)
}

func TestCartRemoveAbsentSKU(t *testing.T) {
	dl, q := newTestLayer(t)
	ctx := context.Background()

	_, err := dl.Cart.Add(ctx, cartItem("sku-1", 1, 10))
	require.NoError(t, err)
	before := len(queuedEvents(t, q))

	_, err = dl.Cart.Remove(ctx, "sku-absent")

	var nfErr *dlerrors.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "sku-absent", nfErr.ChildSKU)

	assert.Len(t, dl.Cart.Items(), 1, "cart state must be untouched")
	assert.Len(t, queuedEvents(t, q), before, "no event for a missed removal")
}

func TestCartUpdate(t *testing.T) {
	dl, _ := newTestLayer(t)
	ctx := context.Background()

	_, err := dl.Cart.Add(ctx, cartItem("sku-1", 1, 10))
	require.NoError(t, err)

	envelope, err := dl.Cart.Update(ctx, "sku-1", 4)
	require.NoError(t, err)
	assert.Equal(t, "cart_update", envelope["event"])

	info := dl.Cart.Info()
	assert.Equal(t, "4", info.CartQuantity)
	assert.Equal(t, "40.00", info.CartTotal)

	t.Run("absent sku", func(t *testing.T) {
		_, err := dl.Cart.Update(ctx, "sku-absent", 2)
		var nfErr *dlerrors.NotFoundError
		assert.True(t, errors.As(err, &nfErr))
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := dl.Cart.Update(ctx, "sku-1", 0)
		var verr *dlerrors.ValidationError
		assert.True(t, errors.As(err, &verr))
	})
}

func TestCartMiniView(t *testing.T) {
	dl, _ := newTestLayer(t)

	items := []format.CartItemInput{cartItem("sku-1", 2, 10), cartItem("sku-2", 1, 5)}
	envelope, err := dl.Cart.MiniView(context.Background(), items, CartInput{CartID: "cart-9"})
	require.NoError(t, err)

	assert.Equal(t, "cart_view-mini", envelope["event"])

	info, ok := envelope["cart"].(Cart)
	require.True(t, ok)
	assert.Equal(t, "cart-9", info.CartID)
	assert.Equal(t, "3", info.CartQuantity)
	assert.Equal(t, "25.00", info.CartTotal)

	// The rendered items are the source of truth and replace the state.
	assert.Len(t, dl.Cart.Items(), 2)
}

func TestCartFullView(t *testing.T) {
	dl, _ := newTestLayer(t)

	envelope, err := dl.Cart.FullView(context.Background(),
		[]format.CartItemInput{cartItem("sku-1", 1, 10)}, CartInput{QuoteID: "quote-4"})
	require.NoError(t, err)

	assert.Equal(t, "cart_view-full", envelope["event"])
	info := dl.Cart.Info()
	assert.Equal(t, "quote-4", info.QuoteID)
}

func TestCartViewRequiresIdentity(t *testing.T) {
	dl, q := newTestLayer(t)

	_, err := dl.Cart.MiniView(context.Background(),
		[]format.CartItemInput{cartItem("sku-1", 1, 10)}, CartInput{})

	var verr *dlerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "cartId or quoteId is required")
	assert.Empty(t, queuedEvents(t, q))
	assert.Empty(t, dl.Cart.Items(), "failed sync must not replace state")
}
