// Package validate performs structural validation of event input before it
// is formatted and emitted. Product and cart-item checks collect every
// failure into one aggregated error rather than stopping at the first, so a
// caller debugging bad input sees all problems in one pass.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
)

// StringOpts controls String validation. The zero value requires a
// non-blank string.
type StringOpts struct {
	// Optional permits a nil value.
	Optional bool

	// AllowEmpty permits a blank (empty or whitespace-only) string.
	AllowEmpty bool

	// MinLength and MaxLength bound the string length when positive.
	MinLength int
	MaxLength int

	// Pattern, when set, must match the value.
	Pattern *regexp.Regexp
}

// NumberOpts controls Number validation. The zero value requires any finite
// number.
type NumberOpts struct {
	// Optional permits a nil value.
	Optional bool

	// Integer requires the value to have no fractional part.
	Integer bool

	// Positive requires the value to be strictly greater than zero.
	Positive bool

	// Min and Max bound the value when set.
	Min *float64
	Max *float64
}

// String validates that value is a usable string parameter.
func String(value any, name string, opts StringOpts) error {
	if value == nil {
		if opts.Optional {
			return nil
		}
		return fmt.Errorf("%s is required", name)
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s must be a string", name)
	}

	if !opts.AllowEmpty && strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s cannot be empty or whitespace", name)
	}

	if opts.MinLength > 0 && len(s) < opts.MinLength {
		return fmt.Errorf("%s must be at least %d characters long", name, opts.MinLength)
	}

	if opts.MaxLength > 0 && len(s) > opts.MaxLength {
		return fmt.Errorf("%s cannot exceed %d characters", name, opts.MaxLength)
	}

	if opts.Pattern != nil && !opts.Pattern.MatchString(s) {
		return fmt.Errorf("%s format is invalid", name)
	}

	return nil
}

// Number validates that value is a usable numeric parameter.
// Accepted dynamic types: int, int64, float64.
func Number(value any, name string, opts NumberOpts) error {
	if value == nil {
		if opts.Optional {
			return nil
		}
		return fmt.Errorf("%s is required", name)
	}

	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		n = v
	default:
		return fmt.Errorf("%s must be a number", name)
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("%s must be a valid number", name)
	}

	if opts.Integer && n != math.Trunc(n) {
		return fmt.Errorf("%s must be an integer", name)
	}

	if opts.Positive && n <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}

	if opts.Min != nil && n < *opts.Min {
		return fmt.Errorf("%s must be at least %v", name, *opts.Min)
	}

	if opts.Max != nil && n > *opts.Max {
		return fmt.Errorf("%s cannot exceed %v", name, *opts.Max)
	}

	return nil
}

// Check aggregates scalar field checks for param into one ValidationError,
// or nil when every check passed. It gives standalone String/Number checks
// the same error type Product and CartItem produce.
func Check(param string, errs ...error) error {
	verr := &dlerrors.ValidationError{Param: param}
	for _, err := range errs {
		verr.Add(err)
	}
	if verr.HasFailures() {
		return verr
	}
	return nil
}

// Product checks every required product field and returns one aggregated
// ValidationError listing all failures, or nil if the input is well formed.
func Product(in format.ProductInput) error {
	verr := &dlerrors.ValidationError{Param: "productData"}
	collectProductFailures(verr, in)
	if verr.HasFailures() {
		return verr
	}
	return nil
}

// CartItem checks every required cart-item field: all product fields plus
// size, sku_by_size, and a positive quantity.
func CartItem(in format.CartItemInput) error {
	verr := &dlerrors.ValidationError{Param: "cartItemData"}
	collectProductFailures(verr, in.ProductInput)

	verr.Add(String(in.Size, "size", StringOpts{}))
	verr.Add(String(in.SKUBySize, "sku_by_size", StringOpts{}))
	verr.Add(Number(in.Qty, "qty", NumberOpts{Integer: true, Positive: true}))

	if verr.HasFailures() {
		return verr
	}
	return nil
}

func collectProductFailures(verr *dlerrors.ValidationError, in format.ProductInput) {
	verr.Add(String(in.Brand, "brand", StringOpts{}))
	verr.Add(String(in.ChildSKU, "child_sku", StringOpts{}))
	verr.Add(String(in.Color, "color", StringOpts{}))
	verr.Add(String(in.Gender, "gender", StringOpts{}))
	verr.Add(String(in.Name, "name", StringOpts{}))
	verr.Add(String(in.ParentCategory, "parent_category", StringOpts{}))
	verr.Add(String(in.ParentSKU, "parent_sku", StringOpts{}))

	verr.Add(Number(in.FullPrice, "full_price", NumberOpts{Positive: true}))
	verr.Add(Number(in.ListedPrice, "listed_price", NumberOpts{Positive: true}))

	if len(in.Category) == 0 {
		verr.AddMessage("category must be a non-empty list")
	} else {
		for i, cat := range in.Category {
			verr.Add(String(cat, fmt.Sprintf("category[%d]", i), StringOpts{}))
		}
	}
}
