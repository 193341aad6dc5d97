// Package callback hosts the loopback redirect target for the external
// OAuth flow. The backend completes the provider handshake and redirects the
// browser to this server with the minted token pair in the query string,
// which is then handed to the session manager.
package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Hoangit1506/shortcourse/internal/session"
	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
	"github.com/Hoangit1506/shortcourse/pkg/slogx"
)

// CallbackPath is the route the provider flow redirects back to, matching
// the web client's receive-tokens route.
const CallbackPath = "/auth/receive-tokens"

// ErrCallbackTimeout reports that no provider redirect arrived in time.
var ErrCallbackTimeout = errors.New("callback: timed out waiting for provider redirect")

type result struct {
	user *coursesdk.UserProfile
	err  error
}

// Server is a one-shot loopback HTTP server. Start it, send the user's
// browser through the provider flow with RedirectURI as the return target,
// then Wait for the outcome.
type Server struct {
	manager *session.Manager
	logger  *slog.Logger

	// LoginURL is where the browser is sent when the callback cannot be
	// completed, mirroring the web client's redirect-to-login behaviour.
	LoginURL string

	srv     *http.Server
	results chan result
	addr    string
}

// New creates a callback server over the given session manager.
func New(manager *session.Manager, logger *slog.Logger) *Server {
	return &Server{
		manager:  manager,
		logger:   logger,
		LoginURL: coursesdk.LoginPath,
		results:  make(chan result, 1),
	}
}

// Start binds the server to an ephemeral loopback port and returns the
// redirect URI to hand to the provider flow.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to bind callback listener: %w", err)
	}
	s.addr = ln.Addr().String()

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, s.handleReceiveTokens)

	s.srv = &http.Server{
		Handler:           slogx.HTTPMiddleware(s.logger)(mux),
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("callback server failed", "error", err)
		}
	}()

	return "http://" + s.addr + CallbackPath, nil
}

// Wait blocks until the provider redirect has been handled or the context
// expires, and returns the resulting user.
func (s *Server) Wait(ctx context.Context) (*coursesdk.UserProfile, error) {
	select {
	case r := <-s.results:
		return r.user, r.err
	case <-ctx.Done():
		return nil, ErrCallbackTimeout
	}
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// handleReceiveTokens implements the callback route contract: both tokens
// must be present in the query string or the browser goes back to login;
// otherwise the pair is handed to the session manager to complete the
// OAuth login.
func (s *Server) handleReceiveTokens(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accessToken := q.Get("accessToken")
	refreshToken := q.Get("refreshToken")

	if accessToken == "" || refreshToken == "" {
		slogx.FromContext(r.Context()).Warn("callback missing token parameters")
		http.Redirect(w, r, s.LoginURL, http.StatusFound)
		s.deliver(result{err: &coursesdk.AuthError{Message: "provider redirect carried no token pair"}})
		return
	}

	user, err := s.manager.CompleteOAuth(r.Context(), accessToken, refreshToken)
	if err != nil {
		slogx.FromContext(r.Context()).Error("oauth completion failed", "error", err)
		http.Redirect(w, r, s.LoginURL, http.StatusFound)
		s.deliver(result{err: err})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "<html><body><p>Login complete. You can return to your terminal.</p></body></html>")
	s.deliver(result{user: user})
}

// deliver records the first outcome; later redirects to an already-consumed
// server are ignored.
func (s *Server) deliver(r result) {
	select {
	case s.results <- r:
	default:
	}
}
