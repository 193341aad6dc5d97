package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealRoundTrip(t *testing.T) {
	t.Parallel()

	sealer := NewSealer([]byte("passphrase"), []byte("install-1"))

	t.Run("bytes", func(t *testing.T) {
		sealed, err := sealer.Seal([]byte("secret token"))
		require.NoError(t, err)
		require.NotEqual(t, []byte("secret token"), sealed)

		plain, err := sealer.Open(sealed)
		require.NoError(t, err)
		require.Equal(t, []byte("secret token"), plain)
	})

	t.Run("string encoding", func(t *testing.T) {
		encoded, err := sealer.SealString("secret token")
		require.NoError(t, err)

		plain, err := sealer.OpenString(encoded)
		require.NoError(t, err)
		require.Equal(t, "secret token", plain)
	})

	t.Run("same plaintext seals differently each time", func(t *testing.T) {
		a, err := sealer.SealString("secret")
		require.NoError(t, err)
		b, err := sealer.SealString("secret")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestSealOpenFailures(t *testing.T) {
	t.Parallel()

	sealer := NewSealer([]byte("passphrase"), []byte("install-1"))

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := sealer.Open([]byte("short"))
		require.ErrorIs(t, err, ErrCiphertext)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		sealed, err := sealer.Seal([]byte("secret"))
		require.NoError(t, err)
		sealed[len(sealed)-1] ^= 0xff

		_, err = sealer.Open(sealed)
		require.ErrorIs(t, err, ErrCiphertext)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := sealer.OpenString("!!not base64!!")
		require.ErrorIs(t, err, ErrCiphertext)
	})

	t.Run("different install cannot open", func(t *testing.T) {
		other := NewSealer([]byte("passphrase"), []byte("install-2"))

		encoded, err := sealer.SealString("secret")
		require.NoError(t, err)

		_, err = other.OpenString(encoded)
		require.ErrorIs(t, err, ErrCiphertext)
	})
}
