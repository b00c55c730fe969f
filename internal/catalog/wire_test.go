package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zaimara-studio/storefront/pkg/types"
)

func TestFlexImageDecodesBothShapes(t *testing.T) {
	t.Parallel()

	payload := `["https://cdn.example.com/a.jpg", {"url": "https://cdn.example.com/b.jpg", "publicId": "b"}]`
	var images []FlexImage
	if err := json.Unmarshal([]byte(payload), &images); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[0].URL != "https://cdn.example.com/a.jpg" || images[0].PublicID != "" {
		t.Fatalf("unexpected string image: %+v", images[0])
	}
	if images[1].URL != "https://cdn.example.com/b.jpg" || images[1].PublicID != "b" {
		t.Fatalf("unexpected object image: %+v", images[1])
	}
}

func TestNormalizeSynthesizesDefaultSize(t *testing.T) {
	t.Parallel()

	raw := RawProduct{
		MongoID: "abc123",
		Name:    "Plain Tee",
		Price:   decimal.NewFromInt(1500),
	}

	product := Normalize(raw)
	if product.ID != "abc123" {
		t.Fatalf("expected mongo id fallback, got %q", product.ID)
	}
	if len(product.Sizes) != 1 {
		t.Fatalf("expected synthesized size, got %d", len(product.Sizes))
	}
	if product.Sizes[0].Name != DefaultSizeName || !product.Sizes[0].Price.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected synthesized size: %+v", product.Sizes[0])
	}
	if !product.InStock {
		t.Fatal("missing inStock should default to available")
	}
}

func TestNormalizeClampsNegativePrices(t *testing.T) {
	t.Parallel()

	raw := RawProduct{
		ID:    "p1",
		Price: decimal.NewFromInt(-500),
		Sizes: []RawSize{{Name: "Small", Price: decimal.NewFromInt(-100)}},
	}

	product := Normalize(raw)
	if !product.Price.IsZero() {
		t.Fatalf("expected clamped product price, got %s", product.Price)
	}
	if !product.Sizes[0].Price.IsZero() {
		t.Fatalf("expected clamped size price, got %s", product.Sizes[0].Price)
	}
}

func TestNormalizeDropsBlankImagesAndSizes(t *testing.T) {
	t.Parallel()

	raw := RawProduct{
		ID:     "p1",
		Price:  decimal.NewFromInt(900),
		Images: []FlexImage{{URL: "  "}, {URL: "https://cdn.example.com/a.jpg"}},
		Sizes:  []RawSize{{Name: "", Price: decimal.NewFromInt(100)}, {Name: "Large", Price: decimal.NewFromInt(3000)}},
	}

	product := Normalize(raw)
	if len(product.Images) != 1 {
		t.Fatalf("expected blank image dropped, got %d", len(product.Images))
	}
	if len(product.Sizes) != 1 || product.Sizes[0].Name != "Large" {
		t.Fatalf("expected unnamed size dropped, got %+v", product.Sizes)
	}
}

func TestPriceForSize(t *testing.T) {
	t.Parallel()

	product := types.Product{
		Price: decimal.NewFromInt(1000),
		Sizes: []types.ProductSize{
			{Name: "Small", Price: decimal.NewFromInt(1000)},
			{Name: "Large", Price: decimal.NewFromInt(3000)},
		},
	}

	if got := PriceForSize(product, "Large"); !got.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected size price, got %s", got)
	}
	if got := PriceForSize(product, "XXL"); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected product price fallback, got %s", got)
	}

	empty := types.Product{}
	if got := PriceForSize(empty, "Small"); !got.IsZero() {
		t.Fatalf("expected zero fallback, got %s", got)
	}
}
