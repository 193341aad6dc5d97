package coursesdk

import (
	"context"
	"net/http"
	"net/url"
)

// loginRequest is the POST /auth/login body. Role is an optional hint for
// accounts that can sign in under more than one role.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// Login exchanges credentials for a token pair. Invalid credentials surface
// as *AuthError carrying the server's message.
func (c *Client) Login(ctx context.Context, email, password, role string) (TokenPair, error) {
	return exec[TokenPair](ctx, c, http.MethodPost, "/auth/login", nil, loginRequest{
		Email:    email,
		Password: password,
		Role:     role,
	})
}

// UserInfo fetches the authenticated user's profile. Requires a bearer
// token.
func (c *Client) UserInfo(ctx context.Context) (UserProfile, error) {
	return exec[UserProfile](ctx, c, http.MethodGet, "/auth/info", nil, nil)
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return execNone(ctx, c, http.MethodPost, "/auth/register", nil, registerRequest{
		Email:    email,
		Password: password,
	})
}

// ForgotPassword asks the server to start a password reset for the given
// address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return execNone(ctx, c, http.MethodPost, "/auth/forgot-password", nil, forgotPasswordRequest{
		Email: email,
	})
}

// GoogleAuthURL returns the backend's Google OAuth entry point. The user's
// browser is sent here; the backend completes the provider handshake and
// redirects back to the callback route with accessToken and refreshToken
// query parameters.
func (c *Client) GoogleAuthURL(redirectURI string) string {
	u := c.baseURL + "/oauth2/authorization/google"
	if redirectURI != "" {
		u += "?" + url.Values{"redirect_uri": {redirectURI}}.Encode()
	}
	return u
}
