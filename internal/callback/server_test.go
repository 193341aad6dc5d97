package callback

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Hoangit1506/shortcourse/internal/session"
	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
	"github.com/Hoangit1506/shortcourse/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", session.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStore) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
	return nil
}

func (m *memStore) Close() error { return nil }

type noopNav struct{}

func (noopNav) LoginRequired() {}

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()

	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/info" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok","data":{"id":"u1","email":"m@example.com","displayName":"Mai","roles":["MEMBER"]}}`))
	}))
	t.Cleanup(platform.Close)

	sealer := cryptox.NewSealer([]byte("test-secret"), []byte("test-install"))
	manager := session.NewManager(&memStore{values: map[string]string{}}, sealer, noopNav{})
	api := coursesdk.NewClient(platform.URL,
		coursesdk.WithTokenSource(manager),
		coursesdk.WithNavigator(noopNav{}),
	)
	manager.AttachClient(api)

	srv := New(manager, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	return srv, manager
}

// noRedirectClient surfaces redirects instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestCallbackCompletesLogin(t *testing.T) {
	t.Parallel()

	srv, manager := newTestServer(t)

	redirectURI, err := srv.Start()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(redirectURI, "http://127.0.0.1:"))
	require.True(t, strings.HasSuffix(redirectURI, CallbackPath))

	resp, err := http.Get(redirectURI + "?accessToken=T1&refreshToken=R1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	user, err := srv.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, "Mai", user.DisplayName)

	require.Equal(t, "T1", manager.AccessToken())
	require.Equal(t, "R1", manager.RefreshToken())
}

func TestCallbackMissingTokens(t *testing.T) {
	t.Parallel()

	srv, manager := newTestServer(t)

	redirectURI, err := srv.Start()
	require.NoError(t, err)

	resp, err := noRedirectClient().Get(redirectURI + "?accessToken=T1")
	require.NoError(t, err)
	defer resp.Body.Close()

	// The browser is sent back to the login entry point.
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, coursesdk.LoginPath, resp.Header.Get("Location"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = srv.Wait(ctx)
	var authErr *coursesdk.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Empty(t, manager.AccessToken())
}

func TestCallbackWaitTimeout(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	_, err := srv.Start()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = srv.Wait(ctx)
	require.ErrorIs(t, err, ErrCallbackTimeout)
}
