package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so the
	// login endpoint cannot be used to enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountLocked is returned once the failed-attempt counter reaches
	// the lockout threshold. The account stays locked until the counter is
	// explicitly reset.
	ErrAccountLocked = errors.New("account locked after too many failed login attempts")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
