package domain

import "time"

// AttemptOutcome classifies how a login attempt ended.
type AttemptOutcome string

const (
	AttemptSuccess AttemptOutcome = "success"
	AttemptInvalid AttemptOutcome = "invalid_credentials"
	AttemptBlocked AttemptOutcome = "blocked"
)

// LoginAttempt is an audit record of a single login attempt. Attempts are
// persisted for operational visibility only; the lockout decision reads the
// per-user counter, never this trail.
type LoginAttempt struct {
	Email      string         `json:"email"`
	Outcome    AttemptOutcome `json:"outcome"`
	OccurredAt time.Time      `json:"occurred_at"`
}
