/*
Package randx provides generators for the random identifiers the chat server
hands out: session tokens, email verification codes, and throwaway guest
passwords.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set.
	Base62Len = int64(len(Base62Chars))

	// GuestPasswordLength is the length of the random password assigned to
	// guest accounts. Guests never see it; it only fills the non-null column.
	GuestPasswordLength = 16
)

// SessionToken generates an opaque session token.
// UUIDs give enough entropy for a process-lifetime token and match the
// token shape the rest of the system expects.
func SessionToken() string {
	return uuid.New().String()
}

// VerifyCode generates an email verification code.
func VerifyCode() string {
	return uuid.New().String()
}

// GuestPassword generates a random Base62 password for a guest account.
func GuestPassword() (string, error) {
	result := make([]byte, GuestPasswordLength)

	for i := 0; i < GuestPasswordLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for guest password: %v", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// IsBase62 checks whether every character of s belongs to the Base62 set.
func IsBase62(s string) bool {
	for _, char := range s {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}
	return true
}
