package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/loginguard/auth-system/internal/api/metrics"
	"github.com/loginguard/auth-system/internal/core/domain"
	"github.com/loginguard/auth-system/internal/core/ports"
)

// DefaultLockoutThreshold is the number of consecutive failed attempts
// after which an account is locked.
const DefaultLockoutThreshold = 5

// AttemptGate gates login attempts on the per-account failure counter. It is
// the sole enforcement point against credential guessing: a denied account
// must never reach password comparison.
type AttemptGate struct {
	repo      ports.UserRepository
	threshold int
	log       zerolog.Logger
}

// NewAttemptGate builds a gate with the given threshold; a non-positive
// threshold falls back to DefaultLockoutThreshold.
func NewAttemptGate(repo ports.UserRepository, threshold int, log zerolog.Logger) *AttemptGate {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	return &AttemptGate{repo: repo, threshold: threshold, log: log}
}

// MayAttempt reports whether the account may proceed to password
// verification. Once the counter reaches the threshold this stays false on
// every call until the counter is explicitly reset — there is no time-based
// unlock.
func (g *AttemptGate) MayAttempt(user *domain.User) bool {
	return user.FailedAttempts < g.threshold
}

// RecordFailure adds exactly one failure to the account's counter. Each call
// counts: N calls leave the counter N higher. The increment runs on a
// context detached from request cancellation — an abandoned request must not
// lose its recorded failure.
func (g *AttemptGate) RecordFailure(ctx context.Context, email string) (int, error) {
	count, err := g.repo.IncrementFailedAttempts(context.WithoutCancel(ctx), email)
	if err != nil {
		return 0, fmt.Errorf("record failure: %w", err)
	}

	if count == g.threshold {
		metrics.LockoutsTotal.Inc()
		g.log.Warn().
			Str("email", email).
			Int("failed_attempts", count).
			Time("locked_at", time.Now().UTC()).
			Msg("account locked")
	}

	return count, nil
}

// RecordSuccess resets the account's counter to zero: a successful login
// clears all prior failures.
func (g *AttemptGate) RecordSuccess(ctx context.Context, email string) error {
	if err := g.repo.ResetFailedAttempts(ctx, email); err != nil {
		return fmt.Errorf("record success: %w", err)
	}
	return nil
}
