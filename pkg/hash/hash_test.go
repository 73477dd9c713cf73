package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("long-enough-password")
	require.NoError(t, err)
	require.NotEqual(t, "long-enough-password", h)

	require.True(t, CheckPassword(h, "long-enough-password"))
	require.False(t, CheckPassword(h, "wrong-password"))
}
