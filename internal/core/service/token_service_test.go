package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loginguard/auth-system/internal/core/domain"
)

// memRevocations is an in-memory stand-in for the Redis revocation list.
type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: make(map[string]time.Time)}
}

func (m *memRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	until, ok := m.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}

func tokenExpiry(t *testing.T, secret, raw string) time.Time {
	t.Helper()
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("token has no expiry")
	}
	return claims.ExpiresAt.Time
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, time.Hour, newMemRevocations())

	issued, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if issued.ExpiresIn != 3600 {
		t.Fatalf("expected expires_in 3600, got %d", issued.ExpiresIn)
	}

	subject, err := ts.Verify(context.Background(), issued.Raw)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", subject)
	}
}

func TestTokenService_VerifyExpiryBoundary(t *testing.T) {
	revs := newMemRevocations()

	// A token with two seconds of life left is still accepted...
	alive := NewTokenService("secret", 2*time.Second, time.Hour, revs)
	issued, err := alive.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := alive.Verify(context.Background(), issued.Raw); err != nil {
		t.Fatalf("expected token to verify before expiry, got %v", err)
	}

	// ...while one expired two seconds ago is rejected as Expired, not as
	// generically invalid.
	expired := NewTokenService("secret", -2*time.Second, time.Hour, revs)
	stale, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := expired.Verify(context.Background(), stale.Raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_VerifyDistinguishesSignatureFailure(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, time.Hour, newMemRevocations())
	other := NewTokenService("other-secret", time.Hour, time.Hour, newMemRevocations())

	forged, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = ts.Verify(context.Background(), forged.Raw)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for bad signature, got %v", err)
	}
	if errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("signature failure must not look like expiry")
	}

	if _, err := ts.Verify(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}

func TestTokenService_RefreshWithinGrace(t *testing.T) {
	// Expired two hours ago, grace allows refresh for a day.
	ts := NewTokenService("secret", -2*time.Hour, 24*time.Hour, newMemRevocations())

	stale, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	fresh, err := ts.Refresh(context.Background(), stale.Raw)
	if err != nil {
		t.Fatalf("refresh within grace failed: %v", err)
	}
	if fresh.UserID != "user-1" {
		t.Fatalf("expected same subject, got %q", fresh.UserID)
	}
	if !fresh.ExpiresAt.After(stale.ExpiresAt) {
		t.Fatalf("expected fresh expiry %v after stale %v", fresh.ExpiresAt, stale.ExpiresAt)
	}
}

func TestTokenService_RefreshBeyondGrace(t *testing.T) {
	// Expired two hours ago, grace of one hour: beyond the window.
	ts := NewTokenService("secret", -2*time.Hour, time.Hour, newMemRevocations())

	stale, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := ts.Refresh(context.Background(), stale.Raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired beyond grace, got %v", err)
	}
}

func TestTokenService_RefreshRejectsTampered(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, time.Hour, newMemRevocations())
	other := NewTokenService("other-secret", time.Hour, time.Hour, newMemRevocations())

	forged, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := ts.Refresh(context.Background(), forged.Raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_InvalidateBlocksVerifyAndRefresh(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, time.Hour, newMemRevocations())

	issued, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := ts.Invalidate(context.Background(), issued.Raw); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	if _, err := ts.Verify(context.Background(), issued.Raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected revoked token to fail verify, got %v", err)
	}
	if _, err := ts.Refresh(context.Background(), issued.Raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected revoked token to fail refresh, got %v", err)
	}
}

func TestTokenService_InvalidateLeavesOtherTokensLive(t *testing.T) {
	ts := NewTokenService("secret", time.Hour, time.Hour, newMemRevocations())

	first, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if err := ts.Invalidate(context.Background(), first.Raw); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, err := ts.Verify(context.Background(), second.Raw); err != nil {
		t.Fatalf("expected second token to stay valid, got %v", err)
	}
}

func TestTokenService_RevocationStoreFailureFailsClosed(t *testing.T) {
	revs := newMemRevocations()
	ts := NewTokenService("secret", time.Hour, time.Hour, revs)

	issued, err := ts.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	revs.err = errors.New("redis unreachable")
	if _, err := ts.Verify(context.Background(), issued.Raw); err == nil {
		t.Fatalf("expected verify to fail when revocation list is unreachable")
	}
}
