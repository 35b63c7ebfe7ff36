package datalayer

import (
	"context"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/validate"
)

// DisplayModule emits product detail page events.
type DisplayModule struct {
	base *base
}

// View tracks a product detail view. Stale product context from earlier
// events is cleared before the new product is pushed.
func (m *DisplayModule) View(ctx context.Context, in format.ProductInput) (Event, error) {
	if err := validate.Product(in); err != nil {
		return nil, m.base.reject(ctx, "display.view", err)
	}

	products := []format.Product{format.FormatProduct(in)}

	m.base.seq.ClearProducts()
	return m.base.push(ctx, "display.view", "product_view",
		withDefault(m.base.pageView("product", "view"), Event{
			"products": products,
		}))
}

// ColorSelect tracks a color swatch selection on the product page.
func (m *DisplayModule) ColorSelect(ctx context.Context, color string) (Event, error) {
	if err := validate.Check("color", validate.String(color, "color", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "display.colorSelect", err)
	}

	return m.base.push(ctx, "display.colorSelect", "product_color-select",
		withDefault(pageRef("product", "color-select"), Event{
			"products": []map[string]any{{"color": color}},
		}))
}

// SizeSelect tracks a size selection on the product page.
func (m *DisplayModule) SizeSelect(ctx context.Context, size string) (Event, error) {
	if err := validate.Check("size", validate.String(size, "size", validate.StringOpts{})); err != nil {
		return nil, m.base.reject(ctx, "display.sizeSelect", err)
	}

	return m.base.push(ctx, "display.sizeSelect", "product_size-select",
		withDefault(pageRef("product", "size-select"), Event{
			"products": []map[string]any{{"size": size}},
		}))
}
