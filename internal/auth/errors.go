package auth

import "errors"

var (
	// ErrUsernameTaken is returned when registering an already used username.
	ErrUsernameTaken = errors.New("auth: username already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
