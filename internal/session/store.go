package session

import (
	"context"
	"errors"
)

// Persisted key names. The layout mirrors the platform's browser client:
// login and OAuth completion write all three keys, a token refresh rewrites
// the first two, logout clears everything.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserInfo     = "userInfo"

	// KeyInstallID holds the per-install identifier used as the sealing
	// salt. It is not session state but lives in the same store so a wipe
	// is total.
	KeyInstallID = "installId"
)

// ErrNotFound reports a missing key.
var ErrNotFound = errors.New("session: key not found")

// Store is the persisted key/value storage behind the session manager.
// Implementations must make SetMany atomic: the access/refresh pair is
// written together or not at all.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// SetMany writes several keys in one transaction.
	SetMany(ctx context.Context, values map[string]string) error

	Delete(ctx context.Context, key string) error

	// Clear removes every key unconditionally.
	Clear(ctx context.Context) error

	Close() error
}
