package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/loginguard/auth-system/internal/core/domain"
)

func TestAttemptGate_ThresholdBoundary(t *testing.T) {
	repo := newStubUserRepo()
	gate := NewAttemptGate(repo, 5, zerolog.Nop())

	for n := 0; n < 5; n++ {
		if !gate.MayAttempt(&domain.User{Email: "a@x.com", FailedAttempts: n}) {
			t.Fatalf("expected attempt allowed at %d failures", n)
		}
	}
	for n := 5; n < 10; n++ {
		if gate.MayAttempt(&domain.User{Email: "a@x.com", FailedAttempts: n}) {
			t.Fatalf("expected attempt denied at %d failures", n)
		}
	}
}

func TestAttemptGate_DefaultThreshold(t *testing.T) {
	repo := newStubUserRepo()
	gate := NewAttemptGate(repo, 0, zerolog.Nop())

	if !gate.MayAttempt(&domain.User{FailedAttempts: DefaultLockoutThreshold - 1}) {
		t.Fatalf("expected attempt allowed below default threshold")
	}
	if gate.MayAttempt(&domain.User{FailedAttempts: DefaultLockoutThreshold}) {
		t.Fatalf("expected attempt denied at default threshold")
	}
}

func TestAttemptGate_RecordFailureAddsExactlyOne(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "b@x.com", "pass", 0)
	gate := NewAttemptGate(repo, 5, zerolog.Nop())

	for i := 1; i <= 7; i++ {
		count, err := gate.RecordFailure(context.Background(), "b@x.com")
		if err != nil {
			t.Fatalf("record failure: %v", err)
		}
		if count != i {
			t.Fatalf("expected counter %d after %d calls, got %d", i, i, count)
		}
	}
}

func TestAttemptGate_RecordSuccessResets(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "c@x.com", "pass", 4)
	gate := NewAttemptGate(repo, 5, zerolog.Nop())

	if err := gate.RecordSuccess(context.Background(), "c@x.com"); err != nil {
		t.Fatalf("record success: %v", err)
	}
	if got := repo.failedAttempts(t, "c@x.com"); got != 0 {
		t.Fatalf("expected counter 0, got %d", got)
	}
}

func TestAttemptGate_RecordFailureSurvivesCancelledRequest(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "d@x.com", "pass", 0)
	gate := NewAttemptGate(repo, 5, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gate.RecordFailure(ctx, "d@x.com"); err != nil {
		t.Fatalf("expected increment despite cancelled context, got %v", err)
	}
	if got := repo.failedAttempts(t, "d@x.com"); got != 1 {
		t.Fatalf("expected counter 1, got %d", got)
	}
}
