package reviews

import (
	"context"
	"testing"

	"github.com/zaimara-studio/storefront/internal/api"
	pkgerrors "github.com/zaimara-studio/storefront/pkg/errors"
	"github.com/zaimara-studio/storefront/pkg/types"
)

type stubReviewBackend struct {
	reviews     []types.Review
	review      *types.Review
	err         error
	createCalls int
	lastInput   api.ReviewInput
}

func (s *stubReviewBackend) ListReviews(ctx context.Context, productID string) ([]types.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reviews, nil
}

func (s *stubReviewBackend) CreateReview(ctx context.Context, input api.ReviewInput) (*types.Review, error) {
	s.createCalls++
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewBackend) UpdateReview(ctx context.Context, id string, patch api.ReviewPatch) (*types.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewBackend) DeleteReview(ctx context.Context, id string) error {
	return s.err
}

func TestSubmitValidatesInput(t *testing.T) {
	t.Parallel()

	backend := &stubReviewBackend{review: &types.Review{ID: "r1"}}
	svc := NewService(backend)

	cases := []api.ReviewInput{
		{Author: "Ayesha", Rating: 5},                                     // missing product
		{ProductID: "p1", Rating: 5},                                      // missing author
		{ProductID: "p1", Author: "Ayesha", Rating: 0},                    // rating too low
		{ProductID: "p1", Author: "Ayesha", Rating: 6},                    // rating too high
		{ProductID: "p1", Author: "   ", Rating: 3},                       // blank author
		{ProductID: "  ", Author: "Ayesha", Rating: 3, Comment: "lovely"}, // blank product
	}
	for i, input := range cases {
		if _, err := svc.Submit(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("case %d: err = %v, want validation error", i, err)
		}
	}
	if backend.createCalls != 0 {
		t.Fatalf("backend reached with invalid input")
	}

	review, err := svc.Submit(context.Background(), api.ReviewInput{
		ProductID: "p1",
		Author:    "  Ayesha ",
		Rating:    4,
		Comment:   " great scent ",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if review.ID != "r1" {
		t.Fatalf("review id = %q", review.ID)
	}
	if backend.lastInput.Author != "Ayesha" || backend.lastInput.Comment != "great scent" {
		t.Fatalf("input not trimmed: %+v", backend.lastInput)
	}
}

func TestForProductRequiresID(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubReviewBackend{})
	if _, err := svc.ForProduct(context.Background(), " "); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("err = %v", err)
	}
}

func TestModerateRequiresAChange(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubReviewBackend{review: &types.Review{ID: "r1", Approved: true}})

	if _, err := svc.Moderate(context.Background(), "r1", api.ReviewPatch{}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("empty patch err = %v", err)
	}

	approved := true
	review, err := svc.Moderate(context.Background(), "r1", api.ReviewPatch{Approved: &approved})
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if !review.Approved {
		t.Fatalf("review not approved")
	}
}
