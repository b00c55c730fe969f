package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zaimara-studio/storefront/internal/catalog"
)

// ListProducts queries the catalog listing, including fuzzy search echoes.
func (c *Client) ListProducts(ctx context.Context, params catalog.ListParams) (*catalog.RawProductList, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	var out catalog.RawProductList
	err := c.do(ctx, request{
		operation: "list_products",
		method:    http.MethodGet,
		path:      "products",
		query:     query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.RawProduct, error) {
	var out catalog.RawProduct
	err := c.do(ctx, request{
		operation: "get_product",
		method:    http.MethodGet,
		path:      fmt.Sprintf("products/%s", url.PathEscape(id)),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductUpload carries the admin product form, images included.
type ProductUpload struct {
	Name        string
	Description string
	Category    string
	Price       string
	SizesJSON   string
	Images      []ImageUpload
}

// ImageUpload is one image file attached to a product form.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateProduct posts a new product as a multipart form (admin).
func (c *Client) CreateProduct(ctx context.Context, upload ProductUpload) (*catalog.RawProduct, error) {
	body, contentType, err := productForm(upload)
	if err != nil {
		return nil, err
	}
	var out catalog.RawProduct
	err = c.do(ctx, request{
		operation:   "create_product",
		method:      http.MethodPost,
		path:        "products",
		multipart:   body,
		contentType: contentType,
		authed:      true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product via multipart form (admin).
func (c *Client) UpdateProduct(ctx context.Context, id string, upload ProductUpload) (*catalog.RawProduct, error) {
	body, contentType, err := productForm(upload)
	if err != nil {
		return nil, err
	}
	var out catalog.RawProduct
	err = c.do(ctx, request{
		operation:   "update_product",
		method:      http.MethodPut,
		path:        fmt.Sprintf("products/%s", url.PathEscape(id)),
		multipart:   body,
		contentType: contentType,
		authed:      true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product (admin).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "delete_product",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("products/%s", url.PathEscape(id)),
		authed:    true,
	}, nil)
}

func productForm(upload ProductUpload) (io.Reader, string, error) {
	fields := map[string]string{
		"name":        upload.Name,
		"description": upload.Description,
		"category":    upload.Category,
		"price":       upload.Price,
		"sizes":       upload.SizesJSON,
	}
	files := make([]filePart, 0, len(upload.Images))
	for _, image := range upload.Images {
		files = append(files, filePart{field: "images", filename: image.Filename, content: image.Content})
	}
	return multipartBody(fields, files...)
}
