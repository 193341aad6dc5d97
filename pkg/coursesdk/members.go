package coursesdk

import (
	"context"
	"net/http"
	"net/url"
)

type enrollRequest struct {
	ClassroomID string `json:"classroomId"`
}

// Enroll enrolls the authenticated user in a classroom. The server enforces
// capacity and duplicate checks; a full or duplicate classroom surfaces as
// *APIError.
func (c *Client) Enroll(ctx context.Context, classroomID string) error {
	return execNone(ctx, c, http.MethodPost, "/api/members", nil, enrollRequest{
		ClassroomID: classroomID,
	})
}

// CancelEnrollment removes the authenticated user from a classroom.
func (c *Client) CancelEnrollment(ctx context.Context, classroomID string) error {
	return execNone(ctx, c, http.MethodDelete, "/api/members/delete/"+classroomID, nil, nil)
}

// CheckEnrollment reports whether the authenticated user is enrolled in a
// classroom.
func (c *Client) CheckEnrollment(ctx context.Context, classroomID string) (EnrollmentStatus, error) {
	q := url.Values{"classroomId": {classroomID}}
	return exec[EnrollmentStatus](ctx, c, http.MethodGet, "/api/members/check", q, nil)
}

// MyCourses returns the authenticated user's enrollments, optionally
// filtered by category.
func (c *Client) MyCourses(ctx context.Context, q ListQuery) (Page[Enrollment], error) {
	return exec[Page[Enrollment]](ctx, c, http.MethodGet, "/api/members/my-courses", q.values(), nil)
}
