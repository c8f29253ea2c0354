package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := SessionToken()
		require.NotEmpty(t, token)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestGuestPassword(t *testing.T) {
	password, err := GuestPassword()
	require.NoError(t, err)
	assert.Len(t, password, GuestPasswordLength)
	assert.True(t, IsBase62(password))
}

func TestIsBase62(t *testing.T) {
	assert.True(t, IsBase62("abcXYZ019"))
	assert.True(t, IsBase62(""))
	assert.False(t, IsBase62("with space"))
	assert.False(t, IsBase62("dash-ed"))
}
