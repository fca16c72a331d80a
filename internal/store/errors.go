package store

import "errors"

// Sentinel error kinds for the repositories. Callers branch with errors.Is
// instead of inspecting message text. Anything not matching one of these is
// a backing-store failure (connectivity, credentials, permissions) and is
// surfaced wrapped.
var (
	// ErrValidation reports a request missing required input.
	ErrValidation = errors.New("validation failed")

	// ErrNoteNotFound reports that no note with the given id exists in the
	// owner's partition.
	ErrNoteNotFound = errors.New("note not found")

	// ErrUserExists reports an attempt to register an identity twice.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound reports an unknown identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword reports a password mismatch on verification.
	ErrInvalidPassword = errors.New("invalid password")
)
