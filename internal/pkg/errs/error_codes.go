/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system failures both inside
the server and in responses to clients. The thousands digit groups codes by
failure kind: 1xxx validation, 2xxx room and moderation, 3xxx session and
account, 4xxx uniqueness conflicts, 5xxx internal.
*/
package errs

// 1xxx: Request and Validation Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1005

	// ErrInvalidEmail indicates a syntactically invalid or reserved email address.
	ErrInvalidEmail = 1101

	// ErrInvalidName indicates a display name containing anything but letters and spaces.
	ErrInvalidName = 1102

	// ErrInvalidPassword indicates a password shorter than six characters or
	// missing a capital letter.
	ErrInvalidPassword = 1103
)

// 2xxx: Room and Moderation Errors
const (
	// ErrRoomNotFound indicates that the requested room identifier does not exist.
	ErrRoomNotFound = 2101

	// ErrPrivateRoomFailed indicates the private room could not be resolved,
	// usually because one of the participants is unknown.
	ErrPrivateRoomFailed = 2102

	// ErrSenderMuted indicates a muted user attempted to post to the broadcast room.
	ErrSenderMuted = 2201
)

// 3xxx: Session and Account Errors
const (
	// ErrSessionExpired indicates the presented token no longer maps to a live session.
	ErrSessionExpired = 3001

	// ErrNotAdmin indicates a moderation action attempted by a non-admin account.
	ErrNotAdmin = 3002

	// ErrInvalidCredentials indicates an unknown email or a wrong password at login.
	ErrInvalidCredentials = 3101

	// ErrUserNotFound indicates the referenced account does not exist.
	ErrUserNotFound = 3102

	// ErrAlreadyActivated indicates an activation attempt for an enabled account.
	ErrAlreadyActivated = 3103

	// ErrVerifyCodeExpired indicates the verification code is older than its validity window.
	ErrVerifyCodeExpired = 3104

	// ErrVerifyCodeMismatch indicates the supplied verification code does not match.
	ErrVerifyCodeMismatch = 3105
)

// 4xxx: Uniqueness Conflicts
const (
	// ErrEmailExists indicates the email is already registered.
	ErrEmailExists = 4001

	// ErrNicknameExists indicates the nickname is already taken.
	ErrNicknameExists = 4002

	// ErrGuestNameExists indicates a guest with that display name is already present.
	ErrGuestNameExists = 4003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000
)
