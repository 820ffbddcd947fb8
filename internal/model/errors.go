package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")

	// Input validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidScore    = errors.New("score must be a positive integer")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidField    = errors.New("unknown score field")

	// Referral errors
	ErrSelfReferral     = errors.New("players cannot refer themselves")
	ErrAlreadyReferred  = errors.New("player has already been referred")
	ErrReferrerNotFound = errors.New("referrer not found")

	// Storage errors, both retryable from the caller's point of view
	ErrStorageConflict = errors.New("storage update conflict")
	ErrStorageTimeout  = errors.New("storage operation timed out")
)
