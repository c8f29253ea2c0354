package account

import (
	"regexp"
	"strings"

	"chatapp/internal/app/user"
	"chatapp/internal/pkg/errs"
)

var (
	emailRegex   = regexp.MustCompile(`^(.+)@(\S+)$`)
	nameRegex    = regexp.MustCompile(`^[ A-Za-z]+$`)
	capitalRegex = regexp.MustCompile(`[A-Z]`)
)

// validEmail rejects malformed addresses and anything under the system
// domain, which is reserved for synthesized guest emails.
func validEmail(email string) *errs.CustomError {
	if !emailRegex.MatchString(email) {
		return errs.NewError(errs.ErrInvalidEmail)
	}
	if strings.Contains(email, user.SystemEmailDomain) {
		return errs.NewError(errs.ErrInvalidEmail)
	}
	return nil
}

// validName accepts letters and spaces only.
func validName(name string) *errs.CustomError {
	if !nameRegex.MatchString(name) {
		return errs.NewError(errs.ErrInvalidName)
	}
	return nil
}

// validPassword requires at least six characters and one capital letter.
func validPassword(password string) *errs.CustomError {
	if len(password) < 6 || !capitalRegex.MatchString(password) {
		return errs.NewError(errs.ErrInvalidPassword)
	}
	return nil
}
