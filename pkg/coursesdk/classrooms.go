package coursesdk

import (
	"context"
	"net/http"
)

// ListClassrooms returns the public page of open classrooms, optionally
// filtered by course.
func (c *Client) ListClassrooms(ctx context.Context, q ListQuery) (Page[Classroom], error) {
	return exec[Page[Classroom]](ctx, c, http.MethodGet, "/api/classrooms", q.values(), nil)
}

// ListClassroomsAdmin returns the admin view of classrooms, including ones
// not open for enrollment.
func (c *Client) ListClassroomsAdmin(ctx context.Context, q ListQuery) (Page[Classroom], error) {
	return exec[Page[Classroom]](ctx, c, http.MethodGet, "/api/classrooms/admin", q.values(), nil)
}

// GetClassroom returns a single classroom by ID.
func (c *Client) GetClassroom(ctx context.Context, id string) (Classroom, error) {
	return exec[Classroom](ctx, c, http.MethodGet, "/api/classrooms/"+id, nil, nil)
}

// CreateClassroom creates a scheduled classroom. Admin only.
func (c *Client) CreateClassroom(ctx context.Context, room Classroom) (Classroom, error) {
	if err := validatePayload(room); err != nil {
		return Classroom{}, err
	}
	return exec[Classroom](ctx, c, http.MethodPost, "/api/classrooms/create", nil, room)
}

// UpdateClassroom updates a classroom. Admin only.
func (c *Client) UpdateClassroom(ctx context.Context, id string, room Classroom) (Classroom, error) {
	if err := validatePayload(room); err != nil {
		return Classroom{}, err
	}
	return exec[Classroom](ctx, c, http.MethodPut, "/api/classrooms/update/"+id, nil, room)
}

// DeleteClassroom deletes a classroom. Admin only.
func (c *Client) DeleteClassroom(ctx context.Context, id string) error {
	return execNone(ctx, c, http.MethodDelete, "/api/classrooms/delete/"+id, nil, nil)
}
