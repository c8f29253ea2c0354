/*
Package user defines the identity model of the chat system and its
PostgreSQL store.

A user is one of three kinds: a registered account created through sign-up
and email verification, a throwaway guest that lives only for the duration of
a session, or an administrator with moderation rights.
*/
package user

import (
	"time"
)

// Type is the account kind of an identity.
type Type string

const (
	TypeAdmin      Type = "ADMIN"
	TypeRegistered Type = "REGISTERED"
	TypeGuest      Type = "GUEST"
)

// Status is the presence state of an identity.
type Status string

const (
	StatusOnline  Status = "ONLINE"
	StatusAway    Status = "AWAY"
	StatusOffline Status = "OFFLINE"
)

const (
	// SystemEmailDomain is appended to a guest's display name to synthesize
	// its email. Its presence marks an account as system-generated.
	SystemEmailDomain = "@chatappsystem.com"

	// GuestNamePrefix marks guest display names in the user listing.
	GuestNamePrefix = "Guest-"

	// VerifyCodeValidity is how long an email verification code stays usable.
	VerifyCodeValidity = 24 * time.Hour
)

// User is an identity record.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	PasswordHash string `json:"-"`
	Type         Type   `json:"userType"`
	Status       Status `json:"userStatus"`
	IsMute       bool   `json:"isMute"`
	Enabled      bool   `json:"enabled"`

	// VerifyCode is set only while a registered account awaits activation.
	VerifyCode      *string    `json:"-"`
	VerifyIssueDate *time.Time `json:"-"`

	Photo       string     `json:"photo,omitempty"`
	Description string     `json:"description,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Age         int        `json:"age,omitempty"`
}

// Rank orders account kinds for the active-user listing:
// admins first, then registered users, then guests.
func Rank(t Type) int {
	switch t {
	case TypeAdmin:
		return 0
	case TypeRegistered:
		return 1
	default:
		return 2
	}
}

// IsSystemGuest reports whether the user is a guest whose email was
// synthesized by the server. Such accounts are deleted at logout instead of
// being marked offline.
func (u *User) IsSystemGuest() bool {
	return u.Type == TypeGuest && hasSystemDomain(u.Email)
}

func hasSystemDomain(email string) bool {
	if len(email) < len(SystemEmailDomain) {
		return false
	}
	return email[len(email)-len(SystemEmailDomain):] == SystemEmailDomain
}

// NewRegistered builds an unverified registered account. The account stays
// disabled and typed GUEST until the verification code is confirmed; the
// nickname defaults to the email.
func NewRegistered(name, email, passwordHash, verifyCode string, now time.Time) *User {
	issue := now
	return &User{
		Name:            name,
		Email:           email,
		Nickname:        email,
		PasswordHash:    passwordHash,
		Type:            TypeGuest,
		Status:          StatusOffline,
		Enabled:         false,
		VerifyCode:      &verifyCode,
		VerifyIssueDate: &issue,
	}
}

// NewGuest builds a guest account from a display name. The email is
// synthesized from the name plus the system domain and is never user-chosen.
func NewGuest(name, passwordHash string) *User {
	return &User{
		Name:         GuestNamePrefix + name,
		Email:        name + SystemEmailDomain,
		Nickname:     name,
		PasswordHash: passwordHash,
		Type:         TypeGuest,
		Status:       StatusOnline,
		Enabled:      true,
	}
}

// Verify activates the account after a successful email confirmation.
func (u *User) Verify() {
	u.Enabled = true
	u.Type = TypeRegistered
	u.VerifyCode = nil
}
