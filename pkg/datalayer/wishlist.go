package datalayer

import (
	"context"

	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// WishlistModule emits wishlist events.
type WishlistModule struct {
	base *base
}

// View tracks the wishlist page with the saved products.
func (m *WishlistModule) View(ctx context.Context, productsArray []format.ProductInput) (Event, error) {
	if productsArray == nil {
		verr := &dlerrors.ValidationError{Param: "productsArray"}
		verr.AddMessage("productsArray is required")
		return nil, m.base.reject(ctx, "wishlist.view", verr)
	}
	for _, in := range productsArray {
		if err := validate.Product(in); err != nil {
			return nil, m.base.reject(ctx, "wishlist.view", err)
		}
	}

	products := make([]format.Product, len(productsArray))
	for i, in := range productsArray {
		products[i] = format.FormatProduct(in)
	}

	m.base.seq.ClearProducts()
	return m.base.push(ctx, "wishlist.view", "wishlist_home",
		withDefault(pageRef("wishlist", "home"), Event{
			"products": products,
		}))
}

// Add tracks a product being saved to the wishlist.
func (m *WishlistModule) Add(ctx context.Context, in format.ProductInput) (Event, error) {
	if err := validate.Product(in); err != nil {
		return nil, m.base.reject(ctx, "wishlist.add", err)
	}

	m.base.seq.ClearProducts()
	return m.base.push(ctx, "wishlist.add", "add_to-wishlist",
		withDefault(pageRef("wishlist", "add"), Event{
			"products": []format.Product{format.FormatProduct(in)},
		}))
}
