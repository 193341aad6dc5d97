// Package session owns the client-side session: who is logged in and which
// credentials to sign requests with. State survives process restarts through
// the credential Store; tokens are sealed before they touch disk.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Hoangit1506/shortcourse/pkg/coursesdk"
	"github.com/Hoangit1506/shortcourse/pkg/cryptox"
	"github.com/google/uuid"
)

// Manager is the single source of truth for the current session. It is
// constructed once at startup and passed down explicitly; there is no
// package-global instance.
//
// Manager implements coursesdk.TokenSource, which is how the HTTP client's
// refresh stage reads and replaces the token pair.
type Manager struct {
	store  Store
	sealer *cryptox.Sealer
	nav    coursesdk.Navigator
	api    *coursesdk.Client

	mu      sync.RWMutex
	user    *coursesdk.UserProfile
	access  string
	refresh string
}

// NewManager creates a session manager over the given store. AttachClient
// must be called before any operation that talks to the API.
func NewManager(store Store, sealer *cryptox.Sealer, nav coursesdk.Navigator) *Manager {
	return &Manager{
		store:  store,
		sealer: sealer,
		nav:    nav,
	}
}

// AttachClient wires the API client the manager uses for login and profile
// fetches. The client and manager reference each other (the client reads
// tokens through the TokenSource interface), so wiring happens in two steps.
func (m *Manager) AttachClient(api *coursesdk.Client) {
	m.api = api
}

// LoadSealer builds the token sealer for a store, generating and persisting
// the per-install salt on first use.
func LoadSealer(ctx context.Context, store Store, secret string) (*cryptox.Sealer, error) {
	installID, err := store.Get(ctx, KeyInstallID)
	if errors.Is(err, ErrNotFound) {
		installID = uuid.NewString()
		if err := store.Set(ctx, KeyInstallID, installID); err != nil {
			return nil, fmt.Errorf("failed to persist install id: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	return cryptox.NewSealer([]byte(secret), []byte(installID)), nil
}

// Restore loads persisted session state into memory. A token pair that is
// incomplete or cannot be unsealed is discarded entirely, preserving the
// both-or-neither invariant.
func (m *Manager) Restore(ctx context.Context) error {
	access, errA := m.getSealed(ctx, KeyAccessToken)
	refresh, errR := m.getSealed(ctx, KeyRefreshToken)

	if errA != nil || errR != nil || access == "" || refresh == "" {
		access, refresh = "", ""
		if err := m.dropTokens(ctx); err != nil {
			return err
		}
	}

	var user *coursesdk.UserProfile
	if raw, err := m.store.Get(ctx, KeyUserInfo); err == nil {
		var profile coursesdk.UserProfile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			user = &profile
		}
	}

	m.mu.Lock()
	m.access = access
	m.refresh = refresh
	m.user = user
	m.mu.Unlock()

	return nil
}

// Login exchanges credentials for a session. On success the token pair is
// persisted first, then the profile is fetched and persisted. A profile
// fetch failure after a successful login is terminal: the tokens stay
// persisted and the caller should send the user back to login.
func (m *Manager) Login(ctx context.Context, email, password, role string) (*coursesdk.UserProfile, error) {
	pair, err := m.api.Login(ctx, email, password, role)
	if err != nil {
		return nil, err
	}

	return m.adopt(ctx, pair.AccessToken, pair.RefreshToken)
}

// CompleteOAuth finishes an external-provider login from the token pair the
// provider redirect carried. Same persistence order and failure mode as
// Login.
func (m *Manager) CompleteOAuth(ctx context.Context, accessToken, refreshToken string) (*coursesdk.UserProfile, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, &coursesdk.AuthError{Message: "incomplete token pair in callback"}
	}

	return m.adopt(ctx, accessToken, refreshToken)
}

// adopt persists a fresh token pair, fetches the profile it belongs to and
// makes it the current user.
func (m *Manager) adopt(ctx context.Context, accessToken, refreshToken string) (*coursesdk.UserProfile, error) {
	if err := m.ReplaceTokens(accessToken, refreshToken); err != nil {
		return nil, err
	}

	info, err := m.api.UserInfo(ctx)
	if err != nil {
		return nil, &coursesdk.AuthError{Message: "failed to fetch profile", Err: err}
	}

	if err := m.setUser(ctx, info); err != nil {
		return nil, err
	}

	return &info, nil
}

// Logout wipes all persisted session state and sends the user to the login
// entry point. It succeeds without any server call and is safe on an
// already-empty session.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.clearWith(ctx)
	m.nav.LoginRequired()
	return err
}

// CurrentUser returns the logged-in user's profile, or nil when anonymous.
func (m *Manager) CurrentUser() *coursesdk.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// CurrentToken returns the access token used for request signing, or ""
// when anonymous.
func (m *Manager) CurrentToken() string {
	return m.AccessToken()
}

// AccessToken implements coursesdk.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// RefreshToken implements coursesdk.TokenSource.
func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

// ReplaceTokens implements coursesdk.TokenSource. The pair is sealed and
// written atomically; the user profile is untouched.
func (m *Manager) ReplaceTokens(accessToken, refreshToken string) error {
	ctx := context.Background()

	sealedAccess, err := m.sealer.SealString(accessToken)
	if err != nil {
		return fmt.Errorf("failed to seal access token: %w", err)
	}
	sealedRefresh, err := m.sealer.SealString(refreshToken)
	if err != nil {
		return fmt.Errorf("failed to seal refresh token: %w", err)
	}

	if err := m.store.SetMany(ctx, map[string]string{
		KeyAccessToken:  sealedAccess,
		KeyRefreshToken: sealedRefresh,
	}); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	m.mu.Lock()
	m.access = accessToken
	m.refresh = refreshToken
	m.mu.Unlock()

	return nil
}

// Clear implements coursesdk.TokenSource: a full local state wipe.
func (m *Manager) Clear() error {
	return m.clearWith(context.Background())
}

func (m *Manager) clearWith(ctx context.Context) error {
	err := m.store.Clear(ctx)

	m.mu.Lock()
	m.access = ""
	m.refresh = ""
	m.user = nil
	m.mu.Unlock()

	return err
}

func (m *Manager) setUser(ctx context.Context, info coursesdk.UserProfile) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := m.store.Set(ctx, KeyUserInfo, string(raw)); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}

	m.mu.Lock()
	m.user = &info
	m.mu.Unlock()

	return nil
}

func (m *Manager) getSealed(ctx context.Context, key string) (string, error) {
	sealed, err := m.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.sealer.OpenString(sealed)
}

func (m *Manager) dropTokens(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyAccessToken); err != nil {
		return err
	}
	return m.store.Delete(ctx, KeyRefreshToken)
}
