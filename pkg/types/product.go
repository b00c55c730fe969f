package types

import "github.com/shopspring/decimal"

// Image is the normalized product image shape. The backend emits images either
// as bare URL strings or as {url, publicId} objects; internal/catalog collapses
// both into this struct before anything else touches them.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
}

// ProductSize is one purchasable size of a product with its own price.
type ProductSize struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock,omitempty"`
}

// Product is the normalized catalog entry. Sizes is never empty after
// normalization: a product without a size list gets a single default size
// priced at the product-level price.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []ProductSize   `json:"sizes"`
	Images      []Image         `json:"images"`
	InStock     bool            `json:"inStock"`
}

// Category is a catalog grouping managed from the back office.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image *Image `json:"image,omitempty"`
}
