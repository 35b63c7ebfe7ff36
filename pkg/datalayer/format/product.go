package format

import (
	"math"
	"strings"
)

// ProductInput is the raw, caller-supplied product shape. Text fields may be
// arbitrarily cased and padded; Category is a list of raw strings; optional
// fields are zero-valued when absent.
type ProductInput struct {
	Brand          string   `json:"brand"`
	Category       []string `json:"category"`
	ChildSKU       string   `json:"child_sku"`
	Color          string   `json:"color"`
	Feature        []string `json:"feature,omitempty"`
	FullPrice      float64  `json:"full_price"`
	Gender         string   `json:"gender"`
	ListedPrice    float64  `json:"listed_price"`
	Name           string   `json:"name"`
	ParentCategory string   `json:"parent_category"`
	ParentSKU      string   `json:"parent_sku"`
	SKUAvailable   bool     `json:"sku_available"`

	AvailableSize []string `json:"available_size,omitempty"`
	Barcode       string   `json:"barcode,omitempty"`
	Model         string   `json:"model,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	RewardPoints  int      `json:"reward_points,omitempty"`
	Speciality    string   `json:"speciality,omitempty"`
	Sport         string   `json:"sport,omitempty"`
	Story         string   `json:"story,omitempty"`
}

// CartItemInput is ProductInput plus the cart-line fields.
type CartItemInput struct {
	ProductInput

	Qty       int    `json:"qty"`
	Size      string `json:"size"`
	SKUBySize string `json:"sku_by_size"`
}

// Product is the canonical product shape appended to events. Category is
// flattened to one comma-joined normalized string and discount/is_markdown
// are always derived from the price fields.
type Product struct {
	Brand          string   `json:"brand"`
	Category       string   `json:"category"`
	ChildSKU       string   `json:"child_sku"`
	Color          string   `json:"color"`
	Discount       float64  `json:"discount"`
	Feature        []string `json:"feature"`
	FullPrice      float64  `json:"full_price"`
	Gender         string   `json:"gender"`
	IsMarkdown     bool     `json:"is_markdown"`
	ListedPrice    float64  `json:"listed_price"`
	Name           string   `json:"name"`
	ParentCategory string   `json:"parent_category"`
	ParentSKU      string   `json:"parent_sku"`
	SKUAvailable   bool     `json:"sku_available"`

	AvailableSize []string `json:"available_size,omitempty"`
	Barcode       string   `json:"barcode,omitempty"`
	Model         string   `json:"model,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	RewardPoints  int      `json:"reward_points,omitempty"`
	Speciality    string   `json:"speciality,omitempty"`
	Sport         string   `json:"sport,omitempty"`
	Story         string   `json:"story,omitempty"`
}

// CartItem is the canonical cart-line shape: Product plus size and quantity.
type CartItem struct {
	Product

	Qty       int    `json:"qty"`
	Size      string `json:"size"`
	SKUBySize string `json:"sku_by_size"`
}

// ListedProduct is a Product with its zero-based position in a listing.
type ListedProduct struct {
	Position int `json:"position"`
	Product
}

// Discount returns the markdown percentage implied by the two prices,
// rounded to two decimals. A non-positive full price yields 0.
func Discount(fullPrice, listedPrice float64) float64 {
	if fullPrice <= 0 {
		return 0
	}
	pct := (fullPrice - listedPrice) / fullPrice * 100
	return math.Round(pct*100) / 100
}

// FormatProduct converts raw product input into its canonical shape.
// The transform is pure and deterministic: text fields are normalized,
// the category list is comma-joined, feature defaults to an empty list,
// and discount/is_markdown are recomputed from the price fields regardless
// of any caller-supplied values.
func FormatProduct(in ProductInput) Product {
	p := Product{
		Brand:          Normalize(in.Brand),
		Category:       joinCategories(in.Category),
		ChildSKU:       in.ChildSKU,
		Color:          Normalize(in.Color),
		Discount:       Discount(in.FullPrice, in.ListedPrice),
		Feature:        in.Feature,
		FullPrice:      in.FullPrice,
		Gender:         Normalize(in.Gender),
		IsMarkdown:     in.FullPrice != in.ListedPrice,
		ListedPrice:    in.ListedPrice,
		Name:           Normalize(in.Name),
		ParentCategory: Normalize(in.ParentCategory),
		ParentSKU:      in.ParentSKU,
		SKUAvailable:   in.SKUAvailable,
	}

	if p.Feature == nil {
		p.Feature = []string{}
	}

	if len(in.AvailableSize) > 0 {
		p.AvailableSize = in.AvailableSize
	}
	p.Barcode = in.Barcode
	p.Model = Normalize(in.Model)
	p.Rating = in.Rating
	p.RewardPoints = in.RewardPoints
	p.Speciality = Normalize(in.Speciality)
	p.Sport = Normalize(in.Sport)
	p.Story = Normalize(in.Story)

	return p
}

// FormatCartItem is FormatProduct plus passthrough of the cart-line fields.
func FormatCartItem(in CartItemInput) CartItem {
	return CartItem{
		Product:   FormatProduct(in.ProductInput),
		Qty:       in.Qty,
		Size:      in.Size,
		SKUBySize: in.SKUBySize,
	}
}

func joinCategories(categories []string) string {
	if len(categories) == 0 {
		return ""
	}
	normalized := make([]string, len(categories))
	for i, cat := range categories {
		normalized[i] = Normalize(cat)
	}
	return strings.Join(normalized, ",")
}
