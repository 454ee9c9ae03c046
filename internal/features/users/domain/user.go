package domain

import "errors"

var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials is returned on any login failure so callers
	// cannot tell a missing account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a dashboard account. PasswordHash never leaves the backend.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}
