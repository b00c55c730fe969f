package catalog

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type productFetcher interface {
	ListProducts(ctx context.Context, params ListParams) (*RawProductList, error)
	GetProduct(ctx context.Context, id string) (*RawProduct, error)
}

// ListParams describe the catalog listing inputs.
type ListParams struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// SearchResult is a normalized product listing plus the applied-search echo
// the backend returns for fuzzy matches.
type SearchResult struct {
	Products      []types.Product
	Total         int
	AppliedSearch string
	MatchType     string
}

// Service exposes normalized catalog reads.
type Service struct {
	fetcher productFetcher
}

// NewService builds the catalog service on top of the backend client.
func NewService(fetcher productFetcher) (*Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("product fetcher required")
	}
	return &Service{fetcher: fetcher}, nil
}

// List returns the catalog page matching params, fully normalized.
func (s *Service) List(ctx context.Context, params ListParams) (*SearchResult, error) {
	raw, err := s.fetcher.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Products:      NormalizeAll(raw.Products),
		Total:         raw.Total,
		AppliedSearch: raw.AppliedSearch,
		MatchType:     raw.MatchType,
	}, nil
}

// Get returns one normalized product.
func (s *Service) Get(ctx context.Context, id string) (*types.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	raw, err := s.fetcher.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product := Normalize(*raw)
	return &product, nil
}
