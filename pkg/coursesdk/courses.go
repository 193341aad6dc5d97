package coursesdk

import (
	"context"
	"net/http"
)

// ListCourses returns a page of courses, optionally filtered by category or
// keyword.
func (c *Client) ListCourses(ctx context.Context, q ListQuery) (Page[Course], error) {
	return exec[Page[Course]](ctx, c, http.MethodGet, "/api/courses", q.values(), nil)
}

// GetCourse returns a single course by ID.
func (c *Client) GetCourse(ctx context.Context, id string) (Course, error) {
	return exec[Course](ctx, c, http.MethodGet, "/api/courses/"+id, nil, nil)
}

// CreateCourse creates a course. Admin only. Thumbnail and promo video are
// uploaded separately and patched in with UpdateCourse.
func (c *Client) CreateCourse(ctx context.Context, course Course) (Course, error) {
	if err := validatePayload(course); err != nil {
		return Course{}, err
	}
	return exec[Course](ctx, c, http.MethodPost, "/api/courses/create", nil, course)
}

// UpdateCourse applies a partial update to a course. Admin only.
func (c *Client) UpdateCourse(ctx context.Context, id string, update CourseUpdate) (Course, error) {
	return exec[Course](ctx, c, http.MethodPut, "/api/courses/update/"+id, nil, update)
}

// DeleteCourse deletes a course. Admin only.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return execNone(ctx, c, http.MethodDelete, "/api/courses/delete/"+id, nil, nil)
}
