package domain

import "time"

// User models an account holder. FailedAttempts is the consecutive failed
// login counter: incremented on every wrong password, reset to zero by a
// successful login, never decremented by one.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FailedAttempts int       `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
