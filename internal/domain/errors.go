package domain

import "errors"

// Validation errors, caught before any store call
var (
	ErrInvalidUsername    = errors.New("username must be 3-75 characters of a-z, 0-9, _ or -")
	ErrInvalidDisplayName = errors.New("display name must be 2-100 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters")
	ErrInvalidGiftName    = errors.New("gift name is required")
	ErrInvalidGiftPrice   = errors.New("gift price must be non-negative")
)

// Lookup errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrGiftNotFound = errors.New("gift not found")
)
