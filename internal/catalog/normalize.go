package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/acewig/storefront/internal/storeapi"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// Product is the frontend-normalized product snapshot. Prices are in the
// major currency unit (cedis). Values are immutable once built; a new fetch
// produces a new value.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Images        []string         `json:"images"`
	InStock       bool             `json:"inStock"`
	TotalStock    int              `json:"totalStock"`
	CategoryName  string           `json:"categoryName,omitempty"`
	Variants      []ProductVariant `json:"variants"`
}

type ProductVariant struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Price         decimal.Decimal   `json:"price"`
	StockQuantity int               `json:"stockQuantity"`
	Options       map[string]string `json:"options"`
	IsDefault     bool              `json:"isDefault"`
}

type Category struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	ParentID     *string `json:"parentId"`
	Position     int     `json:"position"`
	ProductCount *int    `json:"productCount,omitempty"`
}

// Page is one normalized slice of a cursor-paginated listing.
type Page struct {
	Products   []Product `json:"products"`
	NextCursor *string   `json:"nextCursor"`
	HasMore    bool      `json:"hasMore"`
}

// MajorUnits converts a minor-unit amount (pesewas) to the major unit.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorUnitsPerMajor)
}

// NormalizeProduct converts an API payload into the internal snapshot.
func NormalizeProduct(api storeapi.Product) Product {
	image := ""
	if len(api.Images) > 0 {
		image = api.Images[0]
	}

	variants := make([]ProductVariant, 0, len(api.Variants))
	for _, v := range api.Variants {
		variants = append(variants, ProductVariant{
			ID:            v.ID,
			Name:          v.Name,
			SKU:           v.SKU,
			Price:         MajorUnits(v.Price),
			StockQuantity: v.StockQuantity,
			Options:       v.Options,
			IsDefault:     v.IsDefault,
		})
	}

	var original *decimal.Decimal
	if api.OriginalPrice != nil {
		converted := MajorUnits(*api.OriginalPrice)
		original = &converted
	}

	return Product{
		ID:            api.ID,
		Name:          api.Name,
		Slug:          api.Slug,
		Description:   api.Description,
		Price:         MajorUnits(api.Price),
		OriginalPrice: original,
		Image:         image,
		Images:        api.Images,
		InStock:       api.InStock,
		TotalStock:    api.TotalStock,
		CategoryName:  api.CategoryName,
		Variants:      variants,
	}
}

// NormalizeProducts converts a batch, preserving order.
func NormalizeProducts(apis []storeapi.Product) []Product {
	products := make([]Product, 0, len(apis))
	for _, api := range apis {
		products = append(products, NormalizeProduct(api))
	}
	return products
}

// NormalizeCategory converts an API category payload.
func NormalizeCategory(api storeapi.Category) Category {
	return Category{
		ID:           api.ID,
		Name:         api.Name,
		Slug:         api.Slug,
		ParentID:     api.ParentID,
		Position:     api.Position,
		ProductCount: api.ProductCount,
	}
}

// DefaultVariant resolves the variant selection for a product: the variant
// flagged default, else the first, else nil.
func DefaultVariant(p Product) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].IsDefault {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}
