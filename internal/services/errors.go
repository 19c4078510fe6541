package services

import "errors"

// Failures the handlers translate into the wire envelope. Duplicate email
// and invalid credentials deliberately carry generic messages so responses
// cannot be used to enumerate accounts.
var (
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrNotOwner           = errors.New("note is owned by another user")
)
