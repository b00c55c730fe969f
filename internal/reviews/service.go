package reviews

import (
	"context"
	"strings"

	"github.com/zaimara-studio/storefront/internal/api"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type reviewBackend interface {
	ListReviews(ctx context.Context, productID string) ([]types.Review, error)
	CreateReview(ctx context.Context, input api.ReviewInput) (*types.Review, error)
	UpdateReview(ctx context.Context, id string, patch api.ReviewPatch) (*types.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// Service fronts product reviews: public listing and submission, plus the
// admin moderation calls.
type Service struct {
	backend reviewBackend
}

// NewService builds the reviews service.
func NewService(backend reviewBackend) *Service {
	return &Service{backend: backend}
}

// ForProduct lists the approved reviews of one product.
func (s *Service) ForProduct(ctx context.Context, productID string) ([]types.Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.backend.ListReviews(ctx, productID)
}

// Submit posts a customer review. Ratings are a 1 to 5 scale.
func (s *Service) Submit(ctx context.Context, input api.ReviewInput) (*types.Review, error) {
	input.Author = strings.TrimSpace(input.Author)
	input.Comment = strings.TrimSpace(input.Comment)
	switch {
	case strings.TrimSpace(input.ProductID) == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	case input.Author == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author name is required")
	case input.Rating < 1 || input.Rating > 5:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return s.backend.CreateReview(ctx, input)
}

// Moderate applies an admin patch to a review.
func (s *Service) Moderate(ctx context.Context, id string, patch api.ReviewPatch) (*types.Review, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if patch.Approved == nil && patch.Comment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	return s.backend.UpdateReview(ctx, id, patch)
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	return s.backend.DeleteReview(ctx, id)
}
