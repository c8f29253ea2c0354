package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersRoles(t *testing.T) {
	assert.Less(t, Rank(TypeAdmin), Rank(TypeRegistered))
	assert.Less(t, Rank(TypeRegistered), Rank(TypeGuest))
}

func TestNewRegisteredStartsDisabled(t *testing.T) {
	now := time.Now()
	u := NewRegistered("Alice", "alice@example.com", "hash", "code-123", now)

	assert.False(t, u.Enabled)
	assert.Equal(t, TypeGuest, u.Type)
	assert.Equal(t, StatusOffline, u.Status)
	assert.Equal(t, "alice@example.com", u.Nickname)
	require.NotNil(t, u.VerifyCode)
	assert.Equal(t, "code-123", *u.VerifyCode)
	require.NotNil(t, u.VerifyIssueDate)
	assert.Equal(t, now, *u.VerifyIssueDate)
}

func TestNewGuestSynthesizesEmail(t *testing.T) {
	u := NewGuest("visitor", "hash")

	assert.Equal(t, "Guest-visitor", u.Name)
	assert.Equal(t, "visitor@chatappsystem.com", u.Email)
	assert.Equal(t, "visitor", u.Nickname)
	assert.Equal(t, TypeGuest, u.Type)
	assert.Equal(t, StatusOnline, u.Status)
	assert.True(t, u.Enabled)
	assert.True(t, u.IsSystemGuest())
}

func TestIsSystemGuest(t *testing.T) {
	registered := &User{Type: TypeRegistered, Email: "real@chatappsystem.com"}
	assert.False(t, registered.IsSystemGuest())

	guestOwnEmail := &User{Type: TypeGuest, Email: "someone@example.com"}
	assert.False(t, guestOwnEmail.IsSystemGuest())

	shortEmail := &User{Type: TypeGuest, Email: "x"}
	assert.False(t, shortEmail.IsSystemGuest())
}

func TestVerifyActivates(t *testing.T) {
	u := NewRegistered("Alice", "alice@example.com", "hash", "code-123", time.Now())

	u.Verify()

	assert.True(t, u.Enabled)
	assert.Equal(t, TypeRegistered, u.Type)
	assert.Nil(t, u.VerifyCode)
}
