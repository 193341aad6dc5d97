package coursesdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
)

// UploadAvatar uploads a lecturer avatar image and returns the stored URL.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	return c.uploadFile(ctx, "/api/uploads/avatar", filename, r)
}

// UploadCourseThumbnail uploads a course thumbnail image and returns the
// stored URL.
func (c *Client) UploadCourseThumbnail(ctx context.Context, courseID, filename string, r io.Reader) (string, error) {
	return c.uploadFile(ctx, "/api/uploads/courses/"+courseID+"/thumbnail", filename, r)
}

// UploadCourseVideo uploads a course promo video and returns the stored URL.
func (c *Client) UploadCourseVideo(ctx context.Context, courseID, filename string, r io.Reader) (string, error) {
	return c.uploadFile(ctx, "/api/uploads/courses/"+courseID+"/video", filename, r)
}

// DeleteUpload removes a previously uploaded file by its stored URL.
func (c *Client) DeleteUpload(ctx context.Context, fileURL string) error {
	q := url.Values{"url": {fileURL}}
	return execNone(ctx, c, http.MethodDelete, "/api/uploads", q, nil)
}

// uploadFile sends a single-file multipart form through the pipeline. The
// body is buffered in memory so the auth stage can replay it after a token
// refresh.
func (c *Client) uploadFile(ctx context.Context, path, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read upload payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), buf.Bytes())
	if err != nil {
		return "", err
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Op: "POST " + path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errorFromResponse(resp.StatusCode, raw)
	}

	return decodeData[string](raw)
}
