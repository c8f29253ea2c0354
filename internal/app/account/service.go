/*
Package account is the application service facade for identity lifecycle:
registration, activation, login, guest login, and profile updates. It is thin
orchestration over the session directory, the user store, the mailer, and the
rename propagator; the non-trivial invariants live in those components.
*/
package account

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"chatapp/internal/app/db"
	"chatapp/internal/app/session"
	"chatapp/internal/app/user"
	"chatapp/internal/pkg/errs"
	"chatapp/internal/pkg/logx"
	"chatapp/internal/pkg/mailx"
	"chatapp/internal/pkg/randx"
)

// verifyMailSubject is the subject line of the verification mail.
const verifyMailSubject = "Chat App Verification Code"

// UserStore is the identity persistence surface the facade needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByNickname(ctx context.Context, nickname string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	Save(ctx context.Context, u *user.User) error
}

// Renamer propagates an identifier change over historical messages.
type Renamer interface {
	Propagate(ctx context.Context, oldValue, newValue string) (int64, error)
}

// Service composes the identity operations.
type Service struct {
	users     UserStore
	directory *session.Directory
	renamer   Renamer
	mailer    mailx.Sender
}

// NewService builds the account facade.
func NewService(users UserStore, directory *session.Directory, renamer Renamer, mailer mailx.Sender) *Service {
	return &Service{
		users:     users,
		directory: directory,
		renamer:   renamer,
		mailer:    mailer,
	}
}

// Register creates an unverified account and dispatches its verification
// code. The account stays disabled until Activate confirms the code.
func (s *Service) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	if customErr := validEmail(email); customErr != nil {
		return nil, customErr
	}
	if customErr := validName(name); customErr != nil {
		return nil, customErr
	}
	if customErr := validPassword(password); customErr != nil {
		return nil, customErr
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, errs.NewError(errs.ErrEmailExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	u := user.NewRegistered(name, email, string(hash), randx.VerifyCode(), time.Now())

	if err := s.users.Create(ctx, u); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.NewError(errs.ErrEmailExists)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if err := s.mailer.Send(u.Email, verifyMailSubject, *u.VerifyCode); err != nil {
		// The account exists either way; the user can request activation help.
		logx.Error(err, "Failed to send verification mail", "email", u.Email)
	}

	return u, nil
}

// Activate enables a registered account when the verification code matches
// and is still inside its validity window.
func (s *Service) Activate(ctx context.Context, email, code string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	if u.Enabled {
		return nil, errs.NewError(errs.ErrAlreadyActivated)
	}
	if u.VerifyIssueDate == nil || time.Now().After(u.VerifyIssueDate.Add(user.VerifyCodeValidity)) {
		return nil, errs.NewError(errs.ErrVerifyCodeExpired)
	}
	if u.VerifyCode == nil || *u.VerifyCode != code {
		return nil, errs.NewError(errs.ErrVerifyCodeMismatch)
	}

	u.Verify()
	if err := s.users.Save(ctx, u); err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return u, nil
}

// Login checks the credentials, issues a session token (displacing any
// previous one for the identity), and marks the user ONLINE.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", errs.NewError(errs.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", errs.NewError(errs.ErrInvalidCredentials)
	}

	token := s.directory.Issue(u.Email)

	u.Status = user.StatusOnline
	if err := s.users.Save(ctx, u); err != nil {
		return nil, "", errs.NewError(errs.ErrUnknown, err)
	}

	return u, token, nil
}

// GuestLogin creates a transient guest account under a synthesized system
// email and issues its session token. The guest is ONLINE from the start and
// is deleted again at logout.
func (s *Service) GuestLogin(ctx context.Context, name string) (*user.User, string, error) {
	if customErr := validName(name); customErr != nil {
		return nil, "", customErr
	}

	if _, err := s.users.GetByNickname(ctx, name); err == nil {
		return nil, "", errs.NewError(errs.ErrGuestNameExists)
	}

	password, err := randx.GuestPassword()
	if err != nil {
		return nil, "", errs.NewError(errs.ErrUnknown, err)
	}

	u := user.NewGuest(name, password)

	if err := s.users.Create(ctx, u); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", errs.NewError(errs.ErrGuestNameExists)
		}
		return nil, "", errs.NewError(errs.ErrUnknown, err)
	}

	token := s.directory.Issue(u.Email)

	return u, token, nil
}

// UpdateParams carries the optional profile changes of an update call.
// Zero values mean "leave unchanged".
type UpdateParams struct {
	Email       string
	Nickname    string
	Name        string
	Password    string
	Photo       string
	Description string
	DateOfBirth *time.Time
}

// Update applies the changed fields to the account identified by email.
// When the email or nickname changes, the rename propagator rewrites the
// identifier on historical messages afterwards; each changed identifier gets
// its own independent pass.
func (s *Service) Update(ctx context.Context, email string, params UpdateParams) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.NewError(errs.ErrUserNotFound)
	}

	oldEmail := ""
	oldNickname := ""

	if params.Email != "" {
		if customErr := validEmail(params.Email); customErr != nil {
			return nil, customErr
		}
		oldEmail = u.Email
		// A nickname that still mirrors the email follows the email change.
		if u.Nickname == u.Email {
			oldNickname = u.Nickname
			u.Nickname = params.Email
		}
		u.Email = params.Email
	}

	if params.Nickname != "" {
		if oldNickname == "" {
			oldNickname = u.Nickname
		}
		u.Nickname = params.Nickname
	}

	if params.Name != "" {
		if customErr := validName(params.Name); customErr != nil {
			return nil, customErr
		}
		u.Name = params.Name
	}

	if params.Password != "" {
		if customErr := validPassword(params.Password); customErr != nil {
			return nil, customErr
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errs.NewError(errs.ErrUnknown, err)
		}
		u.PasswordHash = string(hash)
	}

	if params.DateOfBirth != nil {
		if params.DateOfBirth.After(time.Now()) {
			return nil, errs.NewError(errs.ErrInvalidParams)
		}
		u.DateOfBirth = params.DateOfBirth
		u.Age = ageAt(*params.DateOfBirth, time.Now())
	}

	if params.Photo != "" {
		u.Photo = params.Photo
	}
	if params.Description != "" {
		u.Description = params.Description
	}

	if err := s.users.Save(ctx, u); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.NewError(errs.ErrEmailExists)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	// Propagation runs only after the store write succeeded. The two passes
	// are independent; a failure here leaves the history partially retagged.
	if oldEmail != "" {
		if _, err := s.renamer.Propagate(ctx, oldEmail, u.Email); err != nil {
			logx.Error(err, "Email rename propagation incomplete", "old", oldEmail)
		}
	}
	if oldNickname != "" && oldNickname != u.Nickname {
		if _, err := s.renamer.Propagate(ctx, oldNickname, u.Nickname); err != nil {
			logx.Error(err, "Nickname rename propagation incomplete", "old", oldNickname)
		}
	}

	return u, nil
}

// ageAt computes full years between birth date and now.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
