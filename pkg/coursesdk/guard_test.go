package coursesdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	t.Run("empty requirement admits everyone", func(t *testing.T) {
		require.True(t, Allowed(nil, nil))
		require.True(t, Allowed([]string{"MEMBER"}, nil))
		require.True(t, Allowed(nil, []string{}))
	})

	t.Run("anonymous user is rejected by any requirement", func(t *testing.T) {
		require.False(t, Allowed(nil, []string{"MEMBER"}))
	})

	t.Run("one overlapping role is enough", func(t *testing.T) {
		require.True(t, Allowed([]string{"MEMBER", "ADMIN"}, []string{"ADMIN"}))
		require.True(t, Allowed([]string{"LECTURER"}, []string{"ADMIN", "LECTURER"}))
	})

	t.Run("disjoint roles are rejected", func(t *testing.T) {
		require.False(t, Allowed([]string{"MEMBER"}, []string{"ADMIN"}))
	})

	t.Run("role names are case sensitive", func(t *testing.T) {
		require.False(t, Allowed([]string{"admin"}, []string{"ADMIN"}))
	})
}
