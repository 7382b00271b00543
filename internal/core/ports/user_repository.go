package ports

import (
	"context"

	"github.com/loginguard/auth-system/internal/core/domain"
)

// UserRepository defines the interface for user credential persistence.
//
// IncrementFailedAttempts and ResetFailedAttempts must persist immediately
// and atomically: a concurrent second attempt has to observe the updated
// counter, never a stale read.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// IncrementFailedAttempts adds exactly one failure to the account's
	// counter and returns the new value.
	IncrementFailedAttempts(ctx context.Context, email string) (int, error)

	// ResetFailedAttempts sets the account's counter back to zero.
	ResetFailedAttempts(ctx context.Context, email string) error
}
