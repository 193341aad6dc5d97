package coursesdk

import (
	"net/url"
	"strconv"
)

// ListQuery carries the common list-endpoint parameters. Zero values are
// omitted from the query string; paging and filtering are entirely
// server-side.
type ListQuery struct {
	Page       int
	Size       int
	Keyword    string
	CategoryID string
	CourseID   string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.CategoryID != "" {
		v.Set("categoryId", q.CategoryID)
	}
	if q.CourseID != "" {
		v.Set("courseId", q.CourseID)
	}
	return v
}
