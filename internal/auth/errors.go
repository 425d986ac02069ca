package auth

import "errors"

var (
	ErrUserExists       = errors.New("User already exists")
	ErrEmailNotFound    = errors.New("Email not found")
	ErrPasswordMismatch = errors.New("Passwords does not match")
)
