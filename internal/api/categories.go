package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zaimara-studio/storefront/pkg/types"
)

// ListCategories returns the public category list.
func (c *Client) ListCategories(ctx context.Context) ([]types.Category, error) {
	var out struct {
		Categories []types.Category `json:"categories"`
	}
	err := c.do(ctx, request{
		operation: "list_categories",
		method:    http.MethodGet,
		path:      "categories",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// ListCategoriesAdmin returns the full category list, hidden entries included.
func (c *Client) ListCategoriesAdmin(ctx context.Context) ([]types.Category, error) {
	var out struct {
		Categories []types.Category `json:"categories"`
	}
	err := c.do(ctx, request{
		operation: "list_categories_admin",
		method:    http.MethodGet,
		path:      "categories/admin",
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// CreateCategory adds a category (admin).
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*types.Category, error) {
	var out types.Category
	err := c.do(ctx, request{
		operation: "create_category",
		method:    http.MethodPost,
		path:      "categories",
		body:      input,
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory renames or re-slugs a category (admin).
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*types.Category, error) {
	var out types.Category
	err := c.do(ctx, request{
		operation: "update_category",
		method:    http.MethodPut,
		path:      fmt.Sprintf("categories/%s", url.PathEscape(id)),
		body:      input,
		authed:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category (admin).
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "delete_category",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("categories/%s", url.PathEscape(id)),
		authed:    true,
	}, nil)
}
