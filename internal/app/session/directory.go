/*
Package session implements the in-memory session directory.

The directory owns both directions of the token↔email association as one
logical unit: every insert and delete touches both maps under the same lock,
so no caller can ever observe or create a half-updated pair. Sessions have no
persistence and no expiry; a process restart invalidates everything.
*/
package session

import (
	"sync"

	"chatapp/internal/pkg/randx"
)

// Directory is the bidirectional token↔identity-email registry.
// Construct exactly one per process and pass it by handle; nothing else may
// mutate either side of the mapping.
type Directory struct {
	mu sync.RWMutex

	// tokenToEmail resolves a presented token back to its identity.
	tokenToEmail map[string]string

	// emailToToken records the single currently-active token per identity.
	emailToToken map[string]string
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		tokenToEmail: make(map[string]string),
		emailToToken: make(map[string]string),
	}
}

// Issue generates a fresh token for the identity and records the pair.
// Any previously issued token for the same identity is invalidated in the
// same critical section: last login wins, one active session per identity.
func (d *Directory) Issue(email string) string {
	token := randx.SessionToken()

	d.mu.Lock()
	defer d.mu.Unlock()

	if oldToken, ok := d.emailToToken[email]; ok {
		delete(d.tokenToEmail, oldToken)
	}

	d.tokenToEmail[token] = email
	d.emailToToken[email] = token

	return token
}

// Resolve looks the token up and returns the identity email it belongs to.
// The reverse hit alone is not trusted: the identity's forward mapping must
// still name this exact token, otherwise a newer Issue has superseded the
// session and the stale entry is discarded.
func (d *Directory) Resolve(token string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	email, ok := d.tokenToEmail[token]
	if !ok {
		return "", false
	}

	if d.emailToToken[email] != token {
		return "", false
	}

	return email, true
}

// Revoke removes both directions of the pair. It only removes entries that
// still belong together, so revoking a stale token cannot tear down a newer
// session for the same identity. Absent entries are a no-op.
func (d *Directory) Revoke(token, email string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tokenToEmail[token] == email {
		delete(d.tokenToEmail, token)
	}
	if d.emailToToken[email] == token {
		delete(d.emailToToken, email)
	}
}

// Len reports the number of live sessions.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.emailToToken)
}
