package catalog

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/types"
)

// DefaultSizeName is synthesized when a product arrives without a size list.
const DefaultSizeName = "Standard"

// FlexImage decodes the two image representations the backend emits: a bare
// URL string or a {url, publicId} object.
type FlexImage struct {
	URL      string
	PublicID string
}

func (f *FlexImage) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		f.URL = asString
		f.PublicID = ""
		return nil
	}
	var asObject struct {
		URL      string `json:"url"`
		PublicID string `json:"publicId"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	f.URL = asObject.URL
	f.PublicID = asObject.PublicID
	return nil
}

// RawSize is the wire shape of one product size.
type RawSize struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// RawProduct is the loosely-typed product payload as the backend sends it.
// Nothing outside this package should consume it; Normalize produces the one
// fixed shape internal logic depends on.
type RawProduct struct {
	ID          string          `json:"id"`
	MongoID     string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []RawSize       `json:"sizes"`
	Images      []FlexImage     `json:"images"`
	InStock     *bool           `json:"inStock"`
}

// RawProductList mirrors the GET /products response envelope.
type RawProductList struct {
	Products      []RawProduct `json:"products"`
	Total         int          `json:"total"`
	AppliedSearch string       `json:"appliedSearch"`
	MatchType     string       `json:"matchType"`
}

// Normalize collapses a raw product into the fixed internal shape: one id
// field, image objects only, a never-empty size list, non-negative prices.
func Normalize(raw RawProduct) types.Product {
	id := raw.ID
	if id == "" {
		id = raw.MongoID
	}

	images := make([]types.Image, 0, len(raw.Images))
	for _, img := range raw.Images {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		images = append(images, types.Image{URL: img.URL, PublicID: img.PublicID})
	}

	price := types.ClampNonNegative(raw.Price)

	sizes := make([]types.ProductSize, 0, len(raw.Sizes))
	for _, size := range raw.Sizes {
		name := strings.TrimSpace(size.Name)
		if name == "" {
			continue
		}
		sizes = append(sizes, types.ProductSize{
			Name:  name,
			Price: types.ClampNonNegative(size.Price),
			Stock: size.Stock,
		})
	}
	if len(sizes) == 0 {
		sizes = []types.ProductSize{{Name: DefaultSizeName, Price: price}}
	}

	inStock := true
	if raw.InStock != nil {
		inStock = *raw.InStock
	}

	return types.Product{
		ID:          id,
		Name:        raw.Name,
		Description: raw.Description,
		Category:    raw.Category,
		Price:       price,
		Sizes:       sizes,
		Images:      images,
		InStock:     inStock,
	}
}

// NormalizeAll maps Normalize over a list.
func NormalizeAll(raws []RawProduct) []types.Product {
	products := make([]types.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, Normalize(raw))
	}
	return products
}

// PriceForSize resolves the snapshot price for a selected size: the matching
// size price, else the product-level price, else zero. Malformed product data
// never produces an error here.
func PriceForSize(product types.Product, selectedSize string) decimal.Decimal {
	for _, size := range product.Sizes {
		if size.Name == selectedSize {
			return types.ClampNonNegative(size.Price)
		}
	}
	return types.ClampNonNegative(product.Price)
}
