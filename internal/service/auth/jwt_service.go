package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token whose subject is the user's ID.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken verifies signature and expiry and extracts the claims.
	// Returns ErrExpiredToken for an expired token and ErrInvalidToken for
	// any other failure, including a missing or non-numeric subject.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	// UserID is parsed from the subject claim.
	UserID int64

	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
