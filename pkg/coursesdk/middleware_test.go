package coursesdk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTokens is an in-memory TokenSource recording every mutation.
type fakeTokens struct {
	mu       sync.Mutex
	access   string
	refresh  string
	replaced int
	cleared  int
}

func (f *fakeTokens) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access
}

func (f *fakeTokens) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh
}

func (f *fakeTokens) ReplaceTokens(accessToken, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = accessToken
	f.refresh = refreshToken
	f.replaced++
	return nil
}

func (f *fakeTokens) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = ""
	f.refresh = ""
	f.cleared++
	return nil
}

type fakeNavigator struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeNavigator) LoginRequired() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *fakeNavigator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	raw, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": message,
		"data":    json.RawMessage(raw),
	})
}

func TestAttachBearer(t *testing.T) {
	t.Parallel()

	t.Run("attaches stored token", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, "ok", Category{ID: "c1", Name: "Go"})
		}))
		defer srv.Close()

		tokens := &fakeTokens{access: "T1", refresh: "R1"}
		client := NewClient(srv.URL, WithTokenSource(tokens))

		cat, err := client.GetCategory(context.Background(), "c1")
		require.NoError(t, err)
		require.Equal(t, "Go", cat.Name)
		require.Equal(t, "Bearer T1", gotAuth)
	})

	t.Run("anonymous requests carry no header", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, "ok", Category{ID: "c1", Name: "Go"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, WithTokenSource(&fakeTokens{}))

		_, err := client.GetCategory(context.Background(), "c1")
		require.NoError(t, err)
		require.Empty(t, gotAuth)
	})

	t.Run("stamps a request id", func(t *testing.T) {
		var gotID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = r.Header.Get("X-Request-Id")
			writeEnvelope(w, http.StatusOK, "ok", nil)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)

		_, err := client.GetCategory(context.Background(), "c1")
		require.NoError(t, err)
		require.NotEmpty(t, gotID)
	})
}

func TestRefreshAndRetry(t *testing.T) {
	t.Parallel()

	t.Run("single 401 refreshes and replays once", func(t *testing.T) {
		var (
			mu           sync.Mutex
			refreshCalls int
			authHeaders  []string
			bodies       []string
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()

			if r.URL.Path == "/auth/refresh-token" {
				refreshCalls++
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				require.Equal(t, "R1", body["refreshToken"])
				writeEnvelope(w, http.StatusOK, "ok", TokenPair{AccessToken: "T2", RefreshToken: "R2"})
				return
			}

			raw, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(raw))
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))

			if r.Header.Get("Authorization") == "Bearer T1" {
				writeEnvelope(w, http.StatusUnauthorized, "token expired", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, "ok", Category{ID: "c9", Name: "Databases"})
		}))
		defer srv.Close()

		tokens := &fakeTokens{access: "T1", refresh: "R1"}
		client := NewClient(srv.URL, WithTokenSource(tokens))

		cat, err := client.CreateCategory(context.Background(), Category{Name: "Databases"})
		require.NoError(t, err)
		require.Equal(t, "c9", cat.ID)

		require.Equal(t, 1, refreshCalls)
		require.Equal(t, []string{"Bearer T1", "Bearer T2"}, authHeaders)

		// The replay carries the same body as the original attempt.
		require.Len(t, bodies, 2)
		require.JSONEq(t, bodies[0], bodies[1])

		// The new pair was stored.
		require.Equal(t, "T2", tokens.AccessToken())
		require.Equal(t, "R2", tokens.RefreshToken())
	})

	t.Run("refresh failure clears session and forces login", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/refresh-token" {
				writeEnvelope(w, http.StatusUnauthorized, "refresh token expired", nil)
				return
			}
			writeEnvelope(w, http.StatusUnauthorized, "token expired", nil)
		}))
		defer srv.Close()

		tokens := &fakeTokens{access: "T1", refresh: "R1"}
		nav := &fakeNavigator{}
		client := NewClient(srv.URL, WithTokenSource(tokens), WithNavigator(nav))

		_, err := client.GetCategory(context.Background(), "c1")

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, "session expired", authErr.Message)

		require.Equal(t, 1, tokens.cleared)
		require.Empty(t, tokens.AccessToken())
		require.Equal(t, 1, nav.count())
	})

	t.Run("second 401 after refresh is returned as-is", func(t *testing.T) {
		var refreshCalls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/refresh-token" {
				refreshCalls++
				writeEnvelope(w, http.StatusOK, "ok", TokenPair{AccessToken: "T2", RefreshToken: "R2"})
				return
			}
			// The endpoint rejects even the fresh token.
			writeEnvelope(w, http.StatusUnauthorized, "insufficient permissions", nil)
		}))
		defer srv.Close()

		tokens := &fakeTokens{access: "T1", refresh: "R1"}
		nav := &fakeNavigator{}
		client := NewClient(srv.URL, WithTokenSource(tokens), WithNavigator(nav))

		_, err := client.GetCategory(context.Background(), "c1")

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, "insufficient permissions", authErr.Message)

		// Exactly one refresh, no session wipe, no forced navigation.
		require.Equal(t, 1, refreshCalls)
		require.Equal(t, 0, tokens.cleared)
		require.Equal(t, 0, nav.count())
	})

	t.Run("401 without a bearer token is not intercepted", func(t *testing.T) {
		var refreshCalls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/refresh-token" {
				refreshCalls++
				return
			}
			writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
		}))
		defer srv.Close()

		tokens := &fakeTokens{}
		nav := &fakeNavigator{}
		client := NewClient(srv.URL, WithTokenSource(tokens), WithNavigator(nav))

		_, err := client.Login(context.Background(), "a@b.c", "wrong", "MEMBER")

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, "Invalid email or password", authErr.Message)
		require.Equal(t, 0, refreshCalls)
		require.Equal(t, 0, nav.count())
	})

	t.Run("missing refresh token fails fast", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusUnauthorized, "token expired", nil)
		}))
		defer srv.Close()

		tokens := &fakeTokens{access: "T1"}
		nav := &fakeNavigator{}
		client := NewClient(srv.URL, WithTokenSource(tokens), WithNavigator(nav))

		_, err := client.GetCategory(context.Background(), "c1")
		require.ErrorIs(t, err, ErrNoRefreshToken)
		require.Equal(t, 1, tokens.cleared)
		require.Equal(t, 1, nav.count())
	})
}

func TestRefreshCoalescing(t *testing.T) {
	t.Parallel()

	t.Run("reuses a pair another flight already minted", func(t *testing.T) {
		tokens := &fakeTokens{access: "T2", refresh: "R2"}
		client := NewClient("http://unused.invalid", WithTokenSource(tokens))

		// The flight holding T1 lost the race; T2 is already current, so no
		// network call happens at all.
		fresh, err := client.refreshTokens(context.Background(), "T1")
		require.NoError(t, err)
		require.Equal(t, "T2", fresh)
		require.Equal(t, 0, tokens.replaced)
	})

	t.Run("concurrent 401s trigger one refresh", func(t *testing.T) {
		var (
			mu           sync.Mutex
			refreshCalls int
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/refresh-token" {
				mu.Lock()
				refreshCalls++
				mu.Unlock()
				writeEnvelope(w, http.StatusOK, "ok", TokenPair{AccessToken: "T2", RefreshToken: "R2"})
				return
			}
			if r.Header.Get("Authorization") == "Bearer T1" {
				writeEnvelope(w, http.StatusUnauthorized, "token expired", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, "ok", Category{ID: "c1", Name: "Go"})
		}))
		defer srv.Close()

		tokens := &fakeTokens{access: "T1", refresh: "R1"}
		client := NewClient(srv.URL, WithTokenSource(tokens))

		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = client.GetCategory(context.Background(), "c1")
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, 1, refreshCalls)
		require.Equal(t, "T2", tokens.AccessToken())
	})
}

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("transport failure maps to NetworkError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client := NewClient(srv.URL)

		_, err := client.GetCategory(context.Background(), "c1")
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		require.Contains(t, netErr.Op, "GET")
	})

	t.Run("non-401 error maps to APIError with server message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusNotFound, "Category not found", nil)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)

		_, err := client.GetCategory(context.Background(), "missing")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		require.Equal(t, "Category not found", apiErr.Message)
	})

	t.Run("unparseable error body falls back to status text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>nginx</html>"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)

		_, err := client.GetCategory(context.Background(), "c1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	})

	t.Run("context cancellation unwraps through NetworkError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		client := NewClient(srv.URL)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.GetCategory(ctx, "c1")
		require.True(t, errors.Is(err, context.Canceled))
	})
}
