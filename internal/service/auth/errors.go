package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, carries a bad
	// signature, or lacks a usable subject.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrWeakSecret is returned when the signing secret is too short.
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")

	// ErrPasswordMismatch indicates a plaintext password does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")
)
