package user

import "errors"

var (
	// ErrUserNotFound is returned when no profile matches the lookup key.
	ErrUserNotFound = errors.New("User not found")

	// ErrEmailTaken is returned when registering an email that already has a
	// profile. Registration is the only write that can hit it; the identity
	// provider owns everything else about the account.
	ErrEmailTaken = errors.New("Email already registered")
)
