package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zaimara-studio/storefront/pkg/types"
)

// ListReviews returns the approved reviews for a product.
func (c *Client) ListReviews(ctx context.Context, productID string) ([]types.Review, error) {
	var out struct {
		Reviews []types.Review `json:"reviews"`
	}
	err := c.do(ctx, request{
		operation: "list_reviews",
		method:    http.MethodGet,
		path:      fmt.Sprintf("reviews/product/%s", url.PathEscape(productID)),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Reviews, nil
}

// ReviewInput is the customer-submitted review payload.
type ReviewInput struct {
	ProductID string `json:"productId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// CreateReview submits a customer review.
func (c *Client) CreateReview(ctx context.Context, input ReviewInput) (*types.Review, error) {
	var out types.Review
	err := c.do(ctx, request{
		operation: "create_review",
		method:    http.MethodPost,
		path:      "reviews",
		body:      input,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewPatch is the admin moderation payload.
type ReviewPatch struct {
	Approved *bool   `json:"approved,omitempty"`
	Comment  *string `json:"comment,omitempty"`
}

// UpdateReview moderates a review (admin).
func (c *Client) UpdateReview(ctx context.Context, id string, patch ReviewPatch) (*types.Review, error) {
	var out types.Review
	err := c.do(ctx, request{
		operation: "update_review",
		method:    http.MethodPut,
		path:      fmt.Sprintf("reviews/%s", url.PathEscape(id)),
		body:      patch,
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes a review (admin).
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "delete_review",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("reviews/%s", url.PathEscape(id)),
		authed:    true,
	}, nil)
}
