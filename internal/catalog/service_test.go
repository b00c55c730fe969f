package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
)

type stubFetcher struct {
	list    *RawProductList
	product *RawProduct
	err     error
}

func (s *stubFetcher) ListProducts(ctx context.Context, params ListParams) (*RawProductList, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubFetcher) GetProduct(ctx context.Context, id string) (*RawProduct, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func TestServiceListNormalizes(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{list: &RawProductList{
		Products:      []RawProduct{{MongoID: "p1", Name: "Tee", Price: decimal.NewFromInt(1000)}},
		Total:         1,
		AppliedSearch: "tee",
		MatchType:     "fuzzy",
	}}
	svc, err := NewService(fetcher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.List(context.Background(), ListParams{Search: "teee"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 || result.AppliedSearch != "tee" || result.MatchType != "fuzzy" {
		t.Fatalf("unexpected envelope: %+v", result)
	}
	if result.Products[0].ID != "p1" || len(result.Products[0].Sizes) != 1 {
		t.Fatalf("expected normalized product, got %+v", result.Products[0])
	}
}

func TestServiceGetRequiresID(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubFetcher{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Get(context.Background(), "  ")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewServiceRequiresFetcher(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil fetcher")
	}
}
