package ports

import (
	"context"

	"github.com/loginguard/auth-system/internal/core/domain"
)

// TokenResult is the uniform success payload for login and refresh.
type TokenResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *domain.User `json:"user"`
}

// AuthService orchestrates credential verification, the lockout gate and
// token issuance.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenResult, error)
	Refresh(ctx context.Context, rawToken string) (*TokenResult, error)
	Logout(ctx context.Context, rawToken string) error
	CurrentUser(ctx context.Context, rawToken string) (*domain.User, error)
}
