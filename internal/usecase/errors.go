package usecase

import "errors"

// Domain failure modes recovered at the handler boundary. Ledger errors
// (unknown user, insufficient tokens) are defined in the repository package
// next to the operations that raise them.
var (
	ErrUserExists      = errors.New("usecase: user already exists")
	ErrInvalidUsername = errors.New("usecase: invalid username")
	ErrInvalidPassword = errors.New("usecase: invalid password")
	ErrInvalidAmount   = errors.New("usecase: amount must be a positive integer")
	ErrInvalidSecret   = errors.New("usecase: invalid admin secret")
)
