package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Role is the authorization level of a user.
type Role string

// Supported roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Username length bounds, counted in characters.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

// Common validation errors
var (
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidUsername     = errors.New("username must be between 3 and 50 characters")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
)

// User represents a registered user of the task API.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User that has not yet been stored. The store assigns
// ID and CreatedAt on insert. Returns an error if validation fails.
func NewUser(email, username, hashedPassword string, role Role) (*User, error) {
	user := &User{
		Email:          email,
		Username:       username,
		HashedPassword: hashedPassword,
		Role:           role,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}

	n := utf8.RuneCountInString(u.Username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return ErrInvalidUsername
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
