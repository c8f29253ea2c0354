/*
Package errs provides custom error types and application-level error code constants.

This file maps every error code to its CustomError template, standardizing
HTTP status codes and client-facing messages.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// A zero Status defaults to http.StatusBadRequest when the error is built.
var errorMap = map[int]CustomError{
	// 1xxx: Request and Validation Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrInvalidEmail:         {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidName:          {Code: ErrInvalidName, Message: "Name may only contain letters and spaces."},
	ErrInvalidPassword:      {Code: ErrInvalidPassword, Message: "Password must be at least 6 characters with a capital letter."},

	// 2xxx: Room and Moderation Errors
	ErrRoomNotFound:      {Code: ErrRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},
	ErrPrivateRoomFailed: {Code: ErrPrivateRoomFailed, Message: "Could not open the private chat room."},
	ErrSenderMuted:       {Code: ErrSenderMuted, Message: "You are muted and cannot post to the main chat.", Status: http.StatusForbidden},

	// 3xxx: Session and Account Errors
	ErrSessionExpired:     {Code: ErrSessionExpired, Message: "Session expired. Please sign in again.", Status: http.StatusUnauthorized},
	ErrNotAdmin:           {Code: ErrNotAdmin, Message: "Only administrators may do that.", Status: http.StatusForbidden},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrAlreadyActivated:   {Code: ErrAlreadyActivated, Message: "This account is already activated."},
	ErrVerifyCodeExpired:  {Code: ErrVerifyCodeExpired, Message: "Verification code expired. A new one is required."},
	ErrVerifyCodeMismatch: {Code: ErrVerifyCodeMismatch, Message: "Verification code does not match."},

	// 4xxx: Uniqueness Conflicts
	ErrEmailExists:     {Code: ErrEmailExists, Message: "This email is already registered.", Status: http.StatusConflict},
	ErrNicknameExists:  {Code: ErrNicknameExists, Message: "This nickname is already taken.", Status: http.StatusConflict},
	ErrGuestNameExists: {Code: ErrGuestNameExists, Message: "A guest with this name is already in the chat.", Status: http.StatusConflict},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
