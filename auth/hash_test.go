package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotContains(t, hash, "correct horse")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong horse", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-bcrypt-hash")
	require.Error(t, err)
}
