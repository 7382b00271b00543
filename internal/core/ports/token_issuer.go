package ports

import (
	"context"
	"time"
)

// IssuedToken is a freshly minted bearer token together with its subject and
// expiry.
type IssuedToken struct {
	Raw       string
	UserID    string
	ExpiresAt time.Time
	ExpiresIn int64 // seconds until expiry, for the token_type=bearer envelope
}

// TokenIssuer mints, verifies, refreshes and invalidates bearer tokens bound
// to a user identity. Issuance is stateless; invalidation relies on an
// external revocation list.
type TokenIssuer interface {
	Issue(userID string) (IssuedToken, error)

	// Verify returns the subject user id. It fails with
	// domain.ErrTokenExpired for a token past its expiry and
	// domain.ErrTokenInvalid for anything malformed, tampered or revoked,
	// so callers can tell "log in again" apart from "corrupt".
	Verify(ctx context.Context, raw string) (string, error)

	// Refresh exchanges a token for a new one with a fresh TTL and the same
	// subject. Tokens expired within the refresh grace window are still
	// accepted; anything older, revoked or tampered is rejected.
	Refresh(ctx context.Context, raw string) (IssuedToken, error)

	// Invalidate revokes the token for the remainder of its natural life.
	Invalidate(ctx context.Context, raw string) error
}

// TokenRevocations is the external revocation list consulted on every
// verification. Implementations must fail closed: an unreachable list is an
// error, never a pass.
type TokenRevocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
