package auth

import (
	"context"
	"time"
)

// MockJWTService is a configurable JWTService for tests in other packages.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, userID int64) (string, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Fixed fields for simple cases
	Token           string
	TokenError      error
	ValidationError error
	Claims          *Claims
}

// Ensure MockJWTService implements JWTService interface
var _ JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a mock that issues "mock-jwt-token" and
// validates every token as belonging to userID.
func NewMockJWTService(userID int64) *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token: "mock-jwt-token",
		Claims: &Claims{
			UserID:    userID,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        "mock-token-id",
		},
	}
}

// GenerateToken implements the JWTService.GenerateToken method.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, userID)
	}
	return m.Token, m.TokenError
}

// ValidateToken implements the JWTService.ValidateToken method.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}
