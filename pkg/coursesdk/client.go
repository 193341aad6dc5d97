package coursesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenSource supplies the credentials attached to outgoing requests and
// receives the replacement pair after a refresh. The session manager
// implements it; tests can substitute an in-memory fake.
type TokenSource interface {
	// AccessToken returns the current access token, or "" when anonymous.
	AccessToken() string

	// RefreshToken returns the current refresh token, or "" when anonymous.
	RefreshToken() string

	// ReplaceTokens overwrites the stored token pair. The user profile is
	// not affected.
	ReplaceTokens(accessToken, refreshToken string) error

	// Clear wipes all persisted session state.
	Clear() error
}

// Navigator receives the forced-navigation side effect of an unrecoverable
// authentication failure. Implementations send the user to the login entry
// point; the interface exists so the side effect is observable in tests.
type Navigator interface {
	LoginRequired()
}

// RequestStage transforms an outgoing request before it is sent. Stages run
// in order; an error aborts the call.
type RequestStage func(req *http.Request) error

// ResponseStage transforms a response after it arrives. A stage may replace
// the response entirely, which is how the refresh-and-retry contract is
// implemented.
type ResponseStage func(req *http.Request, resp *http.Response) (*http.Response, error)

// Client is the platform API client. All requests go through its middleware
// pipeline; see the package documentation for the authentication contract.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	nav     Navigator
	limiter *rate.Limiter

	requestStages  []RequestStage
	responseStages []ResponseStage

	// refreshMu coalesces concurrent refresh attempts so only one flight
	// runs at a time.
	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource wires the credential store the pipeline reads and writes.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithNavigator wires the navigation sink for unrecoverable auth failures.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit applies a client-side politeness limit to outgoing requests.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClient creates a platform API client with the default middleware
// pipeline.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.requestStages = []RequestStage{
		c.stampRequestID,
		c.waitRateLimit,
		c.attachBearer,
	}
	c.responseStages = []ResponseStage{
		c.refreshAndRetry,
	}

	return c
}

// url builds a complete URL from a path and optional query parameters.
func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// newRequest builds a request with a replayable body so the auth stage can
// resend it after a token refresh.
func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	contentType string,
	body []byte,
) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// roundTrip runs a request through the full pipeline: request stages,
// transport, then response stages.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	for _, stage := range c.requestStages {
		if err := stage(req); err != nil {
			return nil, err
		}
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	for _, stage := range c.responseStages {
		resp, err = stage(req, resp)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// send performs the bare transport round trip, mapping transport failures to
// *NetworkError.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{
			Op:  req.Method + " " + req.URL.Path,
			Err: err,
		}
	}
	return resp, nil
}

// exec performs an API call through the pipeline and decodes the envelope's
// data field into T.
func exec[T any](
	ctx context.Context,
	c *Client,
	method, path string,
	query url.Values,
	body any,
) (T, error) {
	var out T

	var payload []byte
	contentType := ""
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return out, fmt.Errorf("failed to encode request body: %w", err)
		}
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, contentType, payload)
	if err != nil {
		return out, err
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, &NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, errorFromResponse(resp.StatusCode, raw)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return out, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return out, fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return out, nil
}

// jsonMarshal wraps json.Marshal with a client-flavoured error.
func jsonMarshal(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return payload, nil
}

// decodeData unwraps the platform envelope and decodes its data field.
func decodeData[T any](raw []byte) (T, error) {
	var out T

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return out, fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return out, nil
}

// execNone is exec for operations whose response data is irrelevant.
func execNone(
	ctx context.Context,
	c *Client,
	method, path string,
	query url.Values,
	body any,
) error {
	_, err := exec[json.RawMessage](ctx, c, method, path, query, body)
	return err
}
