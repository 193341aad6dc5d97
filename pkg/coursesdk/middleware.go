package coursesdk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Hoangit1506/shortcourse/pkg/idx"
	"github.com/Hoangit1506/shortcourse/pkg/slogx"
)

// LoginPath is the login entry point users are sent to after an
// unrecoverable authentication failure.
const LoginPath = "/login"

// expiryBuffer is how long before a token's recorded expiry the client
// refreshes proactively, mirroring the reactive path without waiting for a
// 401. Only applies to access tokens that parse as JWTs.
const expiryBuffer = 30 * time.Second

// ErrNoRefreshToken reports a refresh attempt with no stored refresh token.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// replayKey marks a request as the one-shot retry after a refresh, so the
// auth stage never intercepts its 401 again.
type replayKey struct{}

func isReplay(req *http.Request) bool {
	v, _ := req.Context().Value(replayKey{}).(bool)
	return v
}

// stampRequestID adds a correlation ID header so client and server logs can
// be joined.
func (c *Client) stampRequestID(req *http.Request) error {
	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", idx.New().String())
	}
	return nil
}

// waitRateLimit applies the client-side politeness limit, honouring request
// cancellation while waiting.
func (c *Client) waitRateLimit(req *http.Request) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(req.Context())
}

// attachBearer attaches the stored access token, if any. Requests sent while
// anonymous carry no Authorization header; the server decides whether that is
// acceptable for the endpoint.
//
// When the stored token is a parseable JWT that is at or near expiry, the
// stage refreshes proactively. Failures here are swallowed: the reactive 401
// path is authoritative and will handle a genuinely dead session.
func (c *Client) attachBearer(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}

	token := c.tokens.AccessToken()
	if token == "" {
		return nil
	}

	if exp, ok := tokenExpiry(token); ok && !isReplay(req) {
		if time.Now().After(exp.Add(-expiryBuffer)) && c.tokens.RefreshToken() != "" {
			if fresh, err := c.refreshTokens(req.Context(), token); err == nil {
				token = fresh
			} else {
				slogx.FromContext(req.Context()).Debug("proactive token refresh failed",
					"error", err)
			}
		}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// refreshAndRetry is the auth response stage. On the first 401 for a logical
// request it refreshes the token pair and resends the request exactly once;
// the retried outcome, success or failure, is returned to the caller as-is.
// A failed refresh clears the session, forces navigation to the login entry
// point, and rejects the caller with the refresh error rather than the
// original 401.
func (c *Client) refreshAndRetry(req *http.Request, resp *http.Response) (*http.Response, error) {
	if resp.StatusCode != http.StatusUnauthorized || isReplay(req) || c.tokens == nil {
		return resp, nil
	}

	// A 401 on a request that never carried a token has nothing to refresh;
	// the caller gets it straight back (e.g. a rejected login attempt).
	rejected := bearerToken(req)
	if rejected == "" {
		return resp, nil
	}

	l := slogx.FromContext(req.Context())
	l.Debug("access token rejected, attempting refresh",
		"method", req.Method, "path", req.URL.Path)
	fresh, err := c.refreshTokens(req.Context(), rejected)
	if err != nil {
		drain(resp)
		_ = c.tokens.Clear()
		if c.nav != nil {
			c.nav.LoginRequired()
		}
		l.Warn("token refresh failed, session cleared", "error", err)
		return nil, &AuthError{Message: "session expired", Err: err}
	}

	retry, err := replayRequest(req, fresh)
	if err != nil {
		return nil, err
	}

	drain(resp)
	return c.send(retry)
}

// refreshTokens exchanges the stored refresh token for a new pair and
// persists it. Concurrent callers are serialized; if another flight already
// replaced the rejected token, its result is reused without a second refresh
// call.
func (c *Client) refreshTokens(ctx context.Context, rejected string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.tokens.AccessToken(); current != "" && current != rejected {
		return current, nil
	}

	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	pair, err := c.refreshCall(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if err := c.tokens.ReplaceTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return "", err
	}

	return pair.AccessToken, nil
}

// refreshCall performs the raw POST /auth/refresh-token exchange. It
// deliberately bypasses the pipeline: the refresh endpoint must never
// recurse into refresh-and-retry.
func (c *Client) refreshCall(ctx context.Context, refreshToken string) (TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	payload, err := jsonMarshal(body)
	if err != nil {
		return TokenPair{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/refresh-token", nil,
		"application/json", payload)
	if err != nil {
		return TokenPair{}, err
	}

	resp, err := c.send(req)
	if err != nil {
		return TokenPair{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return TokenPair{}, &NetworkError{Op: "POST /auth/refresh-token", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return TokenPair{}, errorFromResponse(resp.StatusCode, raw)
	}

	pair, err := decodeData[TokenPair](raw)
	if err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// replayRequest clones the original request for the one-shot retry, marking
// it so the auth stage passes a second 401 through, and rewinds the body.
func replayRequest(req *http.Request, accessToken string) (*http.Request, error) {
	retry := req.Clone(context.WithValue(req.Context(), replayKey{}, true))
	retry.Header.Set("Authorization", "Bearer "+accessToken)

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	return retry, nil
}

// bearerToken extracts the token from a request's Authorization header.
func bearerToken(req *http.Request) string {
	const prefix = "Bearer "
	auth := req.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
