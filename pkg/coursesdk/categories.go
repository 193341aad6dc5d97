package coursesdk

import (
	"context"
	"net/http"
)

// ListCategories returns a page of course categories.
func (c *Client) ListCategories(ctx context.Context, q ListQuery) (Page[Category], error) {
	return exec[Page[Category]](ctx, c, http.MethodGet, "/api/categories", q.values(), nil)
}

// GetCategory returns a single category by ID.
func (c *Client) GetCategory(ctx context.Context, id string) (Category, error) {
	return exec[Category](ctx, c, http.MethodGet, "/api/categories/"+id, nil, nil)
}

// CreateCategory creates a category. Admin only.
func (c *Client) CreateCategory(ctx context.Context, cat Category) (Category, error) {
	if err := validatePayload(cat); err != nil {
		return Category{}, err
	}
	return exec[Category](ctx, c, http.MethodPost, "/api/categories/create", nil, cat)
}

// UpdateCategory updates a category. Admin only.
func (c *Client) UpdateCategory(ctx context.Context, id string, cat Category) (Category, error) {
	if err := validatePayload(cat); err != nil {
		return Category{}, err
	}
	return exec[Category](ctx, c, http.MethodPut, "/api/categories/update/"+id, nil, cat)
}

// DeleteCategory deletes a category. Admin only.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return execNone(ctx, c, http.MethodDelete, "/api/categories/delete/"+id, nil, nil)
}
