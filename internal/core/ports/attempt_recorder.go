package ports

import (
	"context"

	"github.com/loginguard/auth-system/internal/core/domain"
)

// AttemptRecorder persists login attempt audit records. Recording is
// best-effort: audit failures are logged, never surfaced to the caller.
type AttemptRecorder interface {
	Record(ctx context.Context, attempt domain.LoginAttempt) error
}

// AttemptSink accepts attempts for asynchronous recording.
type AttemptSink interface {
	Enqueue(attempt domain.LoginAttempt)
}
