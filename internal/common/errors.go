package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Screening errors
	ErrUnknownTarget = errors.New("target is not part of the screened set")

	// Member errors
	ErrUserNotFound = errors.New("user not found")
	ErrSelfTarget   = errors.New("cannot target yourself")

	// Preference errors
	ErrAlreadyMuted   = errors.New("member is already muted")
	ErrAlreadyIgnored = errors.New("member is already ignored")
	ErrAlreadyAllowed = errors.New("member is already on the allow list")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
