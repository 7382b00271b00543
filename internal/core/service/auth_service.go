package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/loginguard/auth-system/internal/api/metrics"
	"github.com/loginguard/auth-system/internal/core/domain"
	"github.com/loginguard/auth-system/internal/core/ports"
)

type authService struct {
	users  ports.UserRepository
	gate   *AttemptGate
	tokens ports.TokenIssuer
	audit  ports.AttemptSink
	locks  *accountLocks
	log    zerolog.Logger
}

// NewAuthService returns an AuthService implementation wiring the credential
// store, the attempt gate and the token issuer together.
func NewAuthService(
	users ports.UserRepository,
	gate *AttemptGate,
	tokens ports.TokenIssuer,
	audit ports.AttemptSink,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		users:  users,
		gate:   gate,
		tokens: tokens,
		audit:  audit,
		locks:  newAccountLocks(),
		log:    log,
	}
}

// Register hashes the password and creates the account record. The failure
// counter of a new account starts at zero.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login runs the attempt state machine: lookup → gate check → password
// verification → outcome recording → token issuance. The whole sequence is
// serialized per account so concurrent attempts always observe each other's
// counter writes.
func (s *authService) Login(ctx context.Context, email, password string) (*ports.TokenResult, error) {
	release := s.locks.Acquire(email)
	defer release()

	start := time.Now()

	// 1. Lookup. An unknown email gets the exact same error as a wrong
	//    password so the endpoint cannot confirm which emails exist.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordAttempt(email, domain.AttemptInvalid, start)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	// 2. Gate check, before any password work. A locked account never
	//    reaches bcrypt and its counter is not touched again.
	if !s.gate.MayAttempt(user) {
		s.log.Warn().
			Str("email", user.Email).
			Time("at", time.Now().UTC()).
			Msg("login attempt on locked account")
		s.recordAttempt(email, domain.AttemptBlocked, start)
		return nil, domain.ErrAccountLocked
	}

	// 3. Password verification.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if _, err := s.gate.RecordFailure(ctx, email); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		s.recordAttempt(email, domain.AttemptInvalid, start)
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Success clears prior failures before the token is minted.
	if err := s.gate.RecordSuccess(ctx, email); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	issued, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.recordAttempt(email, domain.AttemptSuccess, start)
	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()

	return tokenResult(issued, user), nil
}

// Refresh exchanges a still-refreshable token for a new one and returns the
// same result shape as Login.
func (s *authService) Refresh(ctx context.Context, rawToken string) (*ports.TokenResult, error) {
	issued, err := s.tokens.Refresh(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, issued.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	return tokenResult(issued, user), nil
}

// Logout revokes the presented token for the remainder of its life.
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	return s.tokens.Invalidate(ctx, rawToken)
}

// CurrentUser resolves the token to the account's profile. Any verification
// failure surfaces as-is so the boundary can answer 401 with the right kind.
func (s *authService) CurrentUser(ctx context.Context, rawToken string) (*domain.User, error) {
	userID, err := s.tokens.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// recordAttempt queues the audit record and updates the attempt metrics.
// Auditing is fire-and-forget: it never fails or delays a login.
func (s *authService) recordAttempt(email string, outcome domain.AttemptOutcome, start time.Time) {
	metrics.LoginAttemptsTotal.WithLabelValues(string(outcome)).Inc()
	metrics.LoginDuration.WithLabelValues(string(outcome)).Observe(time.Since(start).Seconds())

	if s.audit != nil {
		s.audit.Enqueue(domain.LoginAttempt{
			Email:      email,
			Outcome:    outcome,
			OccurredAt: time.Now().UTC(),
		})
	}
}

func tokenResult(issued ports.IssuedToken, user *domain.User) *ports.TokenResult {
	return &ports.TokenResult{
		AccessToken: issued.Raw,
		TokenType:   "bearer",
		ExpiresIn:   issued.ExpiresIn,
		User:        user,
	}
}
