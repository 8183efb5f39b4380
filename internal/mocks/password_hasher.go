package mocks

import "errors"

// ErrMockPasswordMismatch is returned by MockPasswordHasher when a comparison fails.
var ErrMockPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher for testing. Hash prefixes
// the plaintext with "hashed:" so Compare can check it without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments of the last Compare call
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return ErrMockPasswordMismatch
}
