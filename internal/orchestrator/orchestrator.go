// Package orchestrator owns the request lifecycle of a single detection:
// it validates input, drives the state machine Idle -> Validating ->
// Submitting -> Succeeded|Failed, and publishes the outcome. The current
// result slot is written only from the completion path of the most recent
// accepted call.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/client"
	"github.com/imleoo/aigc-check/internal/models"
)

// State is the orchestrator's position in the submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Detector is the single capability the orchestrator needs from the
// detection client. *client.Client satisfies it; tests inject fakes.
type Detector interface {
	SubmitDetection(ctx context.Context, req models.DetectionRequest) (*models.DetectionResult, error)
}

// Snapshot is a point-in-time view of the orchestrator's published state.
type Snapshot struct {
	State  State
	Result *models.DetectionResult
	Err    error
}

// Orchestrator drives detections against a Detector, one logical
// submission at a time. A newer Submit supersedes an in-flight one: the
// older call is not canceled, but its reply is discarded when it arrives
// (last submission wins, by issue order rather than arrival order).
type Orchestrator struct {
	detector Detector
	logger   *zap.Logger
	timeout  time.Duration

	mu     sync.Mutex
	seq    uint64 // sequence number of the latest issued submission
	state  State
	result *models.DetectionResult
	err    error
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout bounds each submission round-trip. It should match the
// client's own transport bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// New creates an orchestrator over the given detector.
func New(detector Detector, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		detector: detector,
		logger:   logger.Named("orchestrator"),
		timeout:  client.DefaultTimeout,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit validates text and, if valid, runs one detection round-trip.
// It blocks the calling goroutine until the reply arrives, the timeout
// elapses, or ctx is done. The returned values mirror what was (or would
// have been) published; a stale call returns its own outcome even though
// the published state already belongs to a newer submission.
func (o *Orchestrator) Submit(ctx context.Context, text string, options models.DetectionOptions) (*models.DetectionResult, error) {
	req := models.DetectionRequest{Text: text, Options: options}

	o.mu.Lock()
	o.state = StateValidating
	if err := models.ValidateRequest(req); err != nil {
		// Precondition failure: publish Failed without touching the network.
		o.state = StateFailed
		o.err = err
		o.mu.Unlock()
		o.logger.Warn("submission rejected", zap.Error(err))
		return nil, err
	}
	o.seq++
	seq := o.seq
	o.state = StateSubmitting
	o.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result, err := o.detector.SubmitDetection(callCtx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.seq {
		// A newer submission was issued while this one was in flight;
		// its outcome owns the result slot now.
		o.logger.Debug("discarding stale reply",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", o.seq))
		return result, err
	}
	if err != nil {
		// Keep the previous result visible; only the error slot changes.
		o.state = StateFailed
		o.err = err
		o.logger.Warn("detection failed", zap.Uint64("seq", seq), zap.Error(err))
		return nil, err
	}
	o.state = StateSucceeded
	o.result = result
	o.err = nil
	o.logger.Info("detection succeeded",
		zap.Uint64("seq", seq),
		zap.String("id", result.ID),
		zap.Float64("score", result.Score.Total),
		zap.String("risk_level", string(result.RiskLevel)))
	return result, nil
}

// Snapshot returns the currently published state, result and error.
// A failed submission leaves any previously published result in place.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{State: o.state, Result: o.result, Err: o.err}
}
