package coursesdk

import (
	"context"
	"net/http"
)

// ListLecturers returns a page of lecturers.
func (c *Client) ListLecturers(ctx context.Context, q ListQuery) (Page[Lecturer], error) {
	return exec[Page[Lecturer]](ctx, c, http.MethodGet, "/api/lecturers", q.values(), nil)
}

// GetLecturer returns a single lecturer by ID.
func (c *Client) GetLecturer(ctx context.Context, id string) (Lecturer, error) {
	return exec[Lecturer](ctx, c, http.MethodGet, "/api/lecturers/"+id, nil, nil)
}

// CreateLecturer creates a lecturer account. Admin only.
func (c *Client) CreateLecturer(ctx context.Context, lect Lecturer) (Lecturer, error) {
	if err := validatePayload(lect); err != nil {
		return Lecturer{}, err
	}
	return exec[Lecturer](ctx, c, http.MethodPost, "/api/lecturers/create", nil, lect)
}

// UpdateLecturer updates a lecturer. Admin only.
func (c *Client) UpdateLecturer(ctx context.Context, id string, lect Lecturer) (Lecturer, error) {
	if err := validatePayload(lect); err != nil {
		return Lecturer{}, err
	}
	return exec[Lecturer](ctx, c, http.MethodPut, "/api/lecturers/update/"+id, nil, lect)
}

// DeleteLecturer deletes a lecturer. Admin only.
func (c *Client) DeleteLecturer(ctx context.Context, id string) error {
	return execNone(ctx, c, http.MethodDelete, "/api/lecturers/delete/"+id, nil, nil)
}
