package shared

import (
	"errors"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// Authorization header failures.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-sensitively.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", ErrInvalidAuthHeader
	}
	return token, nil
}
