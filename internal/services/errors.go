package services

import "errors"

var (
	// ErrAccessDenied is returned when an article is absent or owned by
	// someone else. Callers cannot tell the two cases apart.
	ErrAccessDenied = errors.New("access to resource denied")

	// ErrCredentialsTaken is returned when an email is already registered.
	ErrCredentialsTaken = errors.New("credentials taken")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
