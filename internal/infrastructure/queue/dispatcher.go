package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/loginguard/auth-system/internal/api/metrics"
	"github.com/loginguard/auth-system/internal/core/domain"
	"github.com/loginguard/auth-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes login attempt audit records off the request path. Records
// are routed to a fixed set of workers using consistent hashing on the email,
// preserving per-account ordering in the trail.
type Dispatcher struct {
	workers  []chan domain.LoginAttempt
	recorder ports.AttemptRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.AttemptRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.LoginAttempt, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LoginAttempt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an attempt record to the worker responsible for its account.
// When the worker's buffer is full the record is dropped with a log line —
// audit pressure must never block a login.
func (d *Dispatcher) Enqueue(attempt domain.LoginAttempt) {
	idx := d.shardIndex(attempt.Email)
	select {
	case d.workers[idx] <- attempt:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("email", attempt.Email).Msg("audit queue full, attempt record dropped")
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LoginAttempt) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case attempt, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.recorder.Record(ctx, attempt); err != nil {
				d.log.Error().Err(err).
					Str("email", attempt.Email).
					Int("worker_id", id).
					Msg("failed to record login attempt")
			}
		}
	}
}
