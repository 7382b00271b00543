package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/loginguard/auth-system/internal/core/domain"
	"github.com/loginguard/auth-system/internal/core/ports"
)

// DefaultTokenTTL is the lifetime of an issued access token.
const DefaultTokenTTL = time.Hour

// DefaultRefreshGrace is how long past its expiry a token may still be
// exchanged for a fresh one.
const DefaultRefreshGrace = 14 * 24 * time.Hour

// TokenService issues and verifies HS256-signed bearer tokens. Issuance is
// stateless; logout is backed by the revocation list, which is consulted on
// every verification and refresh.
type TokenService struct {
	secret       []byte
	ttl          time.Duration
	refreshGrace time.Duration
	revocations  ports.TokenRevocations
}

// NewTokenService builds a TokenService. A zero TTL falls back to
// DefaultTokenTTL and a non-positive grace to DefaultRefreshGrace.
func NewTokenService(secret string, ttl, refreshGrace time.Duration, revocations ports.TokenRevocations) *TokenService {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	if refreshGrace <= 0 {
		refreshGrace = DefaultRefreshGrace
	}
	return &TokenService{
		secret:       []byte(secret),
		ttl:          ttl,
		refreshGrace: refreshGrace,
		revocations:  revocations,
	}
}

// Issue mints a token bound to userID with expiry = now + TTL.
func (ts *TokenService) Issue(userID string) (ports.IssuedToken, error) {
	now := time.Now()
	expiresAt := now.Add(ts.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return ports.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return ports.IssuedToken{
		Raw:       raw,
		UserID:    userID,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(ts.ttl.Seconds()),
	}, nil
}

// Verify validates signature, expiry and revocation status, returning the
// subject user id. Expiry and signature failures surface as distinct error
// kinds; a revoked token fails as invalid.
func (ts *TokenService) Verify(ctx context.Context, raw string) (string, error) {
	claims, err := ts.parse(raw, true)
	if err != nil {
		return "", err
	}

	revoked, err := ts.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed: an unreachable revocation list never passes a token.
		return "", fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return "", domain.ErrTokenInvalid
	}

	return claims.Subject, nil
}

// Refresh exchanges the presented token for a new one with a fresh TTL and a
// new token id. A token expired within the refresh grace window is still
// accepted; the old token is not revoked here — stateless tokens stay live
// until their natural expiry.
func (ts *TokenService) Refresh(ctx context.Context, raw string) (ports.IssuedToken, error) {
	claims, err := ts.parse(raw, false)
	if err != nil {
		return ports.IssuedToken{}, err
	}

	if claims.ExpiresAt == nil || claims.Subject == "" {
		return ports.IssuedToken{}, domain.ErrTokenInvalid
	}
	if time.Now().After(claims.ExpiresAt.Add(ts.refreshGrace)) {
		return ports.IssuedToken{}, domain.ErrTokenExpired
	}

	revoked, err := ts.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return ports.IssuedToken{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return ports.IssuedToken{}, domain.ErrTokenInvalid
	}

	return ts.Issue(claims.Subject)
}

// Invalidate puts the token on the revocation list until refresh of it is no
// longer possible (natural expiry plus the refresh grace window). Already
// unusable tokens are a no-op.
func (ts *TokenService) Invalidate(ctx context.Context, raw string) error {
	claims, err := ts.parse(raw, false)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return domain.ErrTokenInvalid
	}

	remaining := time.Until(claims.ExpiresAt.Add(ts.refreshGrace))
	if remaining <= 0 {
		return nil
	}

	if err := ts.revocations.Revoke(ctx, claims.ID, remaining); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// parse verifies the HS256 signature and, when validateExpiry is set, the
// exp claim. Expired tokens map to domain.ErrTokenExpired, anything else to
// domain.ErrTokenInvalid.
func (ts *TokenService) parse(raw string, validateExpiry bool) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if !validateExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return ts.secret, nil
	})
	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrTokenExpired
	default:
		return nil, domain.ErrTokenInvalid
	}
}
