package datalayer

import (
	"context"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// ListFilters describes the filters applied to a product listing.
//
// Multiple filter types are separated with a pipe character; the values
// field holds the matching values in the same order, with multiple values
// for one type separated by commas. Example: filter_type
// "category|price|color" with filter_value "sneakers|50-100|red,blue".
type ListFilters struct {
	FilterType  string `json:"filter_type"`
	FilterValue string `json:"filter_value"`
}

// ListSort describes the selected sort order of a product listing.
type ListSort struct {
	Option string `json:"option"`
}

// ListingModule emits product listing page events.
type ListingModule struct {
	base *base
}

// View tracks the initial render of a product listing. Every product is
// validated; positions are assigned in render order. When listName is
// empty the page path slug is used.
func (m *ListingModule) View(ctx context.Context, productsArray []format.ProductInput, listName string) (Event, error) {
	for _, in := range productsArray {
		if err := validate.Product(in); err != nil {
			return nil, m.base.reject(ctx, "listing.view", err)
		}
	}

	if listName == "" {
		listName = m.base.pathSlug()
	}

	products := make([]format.ListedProduct, len(productsArray))
	for i, in := range productsArray {
		products[i] = format.ListedProduct{
			Position: i,
			Product:  format.FormatProduct(in),
		}
	}

	page := m.base.pageView("product", "listing-view")
	page["list_name"] = listName

	m.base.seq.ClearProducts()
	return m.base.push(ctx, "listing.view", "product_listing-view",
		withDefault(page, Event{
			"products": products,
		}))
}

// Filter tracks a change to the listing's filters.
func (m *ListingModule) Filter(ctx context.Context, filters ListFilters) (Event, error) {
	if err := validate.Check("listFilters",
		validate.String(filters.FilterType, "filter_type", validate.StringOpts{}),
		validate.String(filters.FilterValue, "filter_value", validate.StringOpts{}),
	); err != nil {
		return nil, m.base.reject(ctx, "listing.filter", err)
	}

	return m.base.push(ctx, "listing.filter", "product_listing-filters",
		withDefault(pageRef("product", "listing-filters"), Event{
			"list_filters": filters,
		}))
}

// Sort tracks a change to the listing's sort order.
func (m *ListingModule) Sort(ctx context.Context, option string) (Event, error) {
	if err := validate.Check("option", validate.String(option, "option", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "listing.sort", err)
	}

	return m.base.push(ctx, "listing.sort", "product_listing-sort",
		withDefault(pageRef("product", "listing-sort"), Event{
			"list_sort": ListSort{Option: option},
		}))
}
