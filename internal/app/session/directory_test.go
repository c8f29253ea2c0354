package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndResolve(t *testing.T) {
	d := NewDirectory()

	token := d.Issue("alice@example.com")
	require.NotEmpty(t, token)

	email, ok := d.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)
}

func TestResolveUnknownToken(t *testing.T) {
	d := NewDirectory()

	_, ok := d.Resolve("no-such-token")
	assert.False(t, ok)
}

func TestIssueDisplacesPreviousToken(t *testing.T) {
	d := NewDirectory()

	first := d.Issue("alice@example.com")
	second := d.Issue("alice@example.com")
	require.NotEqual(t, first, second)

	// Last login wins: the first token must no longer resolve.
	_, ok := d.Resolve(first)
	assert.False(t, ok)

	email, ok := d.Resolve(second)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)

	assert.Equal(t, 1, d.Len())
}

func TestRevokeRemovesBothDirections(t *testing.T) {
	d := NewDirectory()

	token := d.Issue("alice@example.com")
	d.Revoke(token, "alice@example.com")

	_, ok := d.Resolve(token)
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestRevokeIsNoOpWhenAbsent(t *testing.T) {
	d := NewDirectory()

	d.Revoke("ghost-token", "ghost@example.com")
	assert.Equal(t, 0, d.Len())
}

func TestRevokeStaleTokenKeepsNewerSession(t *testing.T) {
	d := NewDirectory()

	stale := d.Issue("alice@example.com")
	current := d.Issue("alice@example.com")

	// Revoking the displaced token must not tear down the live session.
	d.Revoke(stale, "alice@example.com")

	email, ok := d.Resolve(current)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)
}

func TestConcurrentIssueKeepsPairConsistent(t *testing.T) {
	d := NewDirectory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := d.Issue("alice@example.com")
			// A resolved token must always point back at its own identity.
			if email, ok := d.Resolve(token); ok {
				assert.Equal(t, "alice@example.com", email)
			}
		}()
	}
	wg.Wait()

	// Whatever interleaving happened, exactly one session survives.
	assert.Equal(t, 1, d.Len())
}
