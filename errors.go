package session

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeSlotEmpty          = "SESSION_SLOT_EMPTY"
	textCodeSlotDecode         = "SESSION_SLOT_DECODE"
	textCodeSlotWrite          = "SESSION_SLOT_WRITE"
	textCodeSlotRemove         = "SESSION_SLOT_REMOVE"
	textCodeOutsideProvider    = "SESSION_OUTSIDE_PROVIDER"
	textCodeInvalidRole        = "INVALID_ROLE"
)

// ErrInvalidCredentials is returned by Login when the directory holds no
// record for the given email. The session state is left unchanged.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrUserNotFound is the directory miss; Login translates it into
// ErrInvalidCredentials before it reaches callers.
var ErrUserNotFound = goerrors.New("user not found in directory", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrSlotEmpty reports an absent storage slot. Initialize treats it as a
// plain signed-out start, not a failure.
var ErrSlotEmpty = goerrors.New("session slot is empty", goerrors.CategoryNotFound).
	WithTextCode(textCodeSlotEmpty).
	WithCode(goerrors.CodeNotFound)

// ErrSlotDecode reports a slot whose content cannot be decoded as a user
// record. The store recovers by discarding it and falling back to signed-out.
var ErrSlotDecode = goerrors.New("unable to decode session slot", goerrors.CategoryValidation).
	WithTextCode(textCodeSlotDecode).
	WithCode(goerrors.CodeBadRequest)

// ErrSlotWrite reports a failed slot write. Login fails the whole operation
// when this happens so state and storage never disagree.
var ErrSlotWrite = goerrors.New("unable to write session slot", goerrors.CategoryInternal).
	WithTextCode(textCodeSlotWrite).
	WithCode(goerrors.CodeInternal)

// ErrSlotRemove reports a failed slot removal during Logout. The in-memory
// transition to signed-out still happens; the error is returned so stricter
// callers can surface it.
var ErrSlotRemove = goerrors.New("unable to remove session slot", goerrors.CategoryInternal).
	WithTextCode(textCodeSlotRemove).
	WithCode(goerrors.CodeInternal)

// ErrOutsideProvider is the contract violation for reading session state
// outside the provider's scope. This is a programming error, not a runtime
// condition a handler should recover from.
var ErrOutsideProvider = goerrors.New("session store used outside provider scope", goerrors.CategoryOperation).
	WithTextCode(textCodeOutsideProvider).
	WithCode(goerrors.CodeInternal)

// IsInvalidCredentials will check for a failed directory lookup on login
func IsInvalidCredentials(err error) bool {
	return hasTextCode(err, textCodeInvalidCredentials)
}

// IsSlotEmpty will check for an absent storage slot
func IsSlotEmpty(err error) bool {
	return hasTextCode(err, textCodeSlotEmpty)
}

// IsDecodeError will check for malformed slot content
func IsDecodeError(err error) bool {
	return hasTextCode(err, textCodeSlotDecode)
}

// IsStorageError will check for slot write/remove failures
func IsStorageError(err error) bool {
	return hasTextCode(err, textCodeSlotWrite) || hasTextCode(err, textCodeSlotRemove)
}

// IsMisuseError will check for the outside-provider contract violation
func IsMisuseError(err error) bool {
	return hasTextCode(err, textCodeOutsideProvider)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

func errInvalidRole(u *User) error {
	return goerrors.New("user has an unknown or invalid role", goerrors.CategoryValidation).
		WithTextCode(textCodeInvalidRole).
		WithMetadata(map[string]any{"role": u.Role, "user_id": u.ID.String()})
}
