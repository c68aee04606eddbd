// Package telemetry reports anonymous usage events.
//
// Events are derived from log entries: a Telemetry exposes a zapcore.Core that
// is teed into the process logger, so commands only have to log an entry
// carrying the activity field to be counted. Capture runs in the background
// and never fails the command that triggered it.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// ActivityField marks a log entry as a user activity.
	ActivityField = "activity"
	// ErrorField is the key zap.Error writes; entries carrying it are
	// reported as error events.
	ErrorField = "error"

	libName               = "telemetry/go"
	defaultCaptureTimeout = 5 * time.Second
)

// Event is a single telemetry event.
type Event struct {
	Name       string
	DistinctID string
	Properties map[string]any
	Timestamp  time.Time
}

// Sink delivers events to a telemetry backend.
type Sink interface {
	Capture(ctx context.Context, ev Event) error
}

// Telemetry turns log entries into events and hands them to a Sink.
type Telemetry struct {
	sink     Sink
	app      string
	version  string
	userID   string
	activity bool
	errors   bool
	timeout  time.Duration
	log      *zap.Logger

	wg sync.WaitGroup
}

// Option configures a Telemetry.
type Option func(*Telemetry)

// WithActivity enables events for entries carrying ActivityField.
func WithActivity() Option { return func(t *Telemetry) { t.activity = true } }

// WithErrors enables events for entries carrying ErrorField.
func WithErrors() Option { return func(t *Telemetry) { t.errors = true } }

// WithVersion sets the version reported with every event.
func WithVersion(v string) Option { return func(t *Telemetry) { t.version = v } }

// WithUserID overrides the anonymous machine derived id.
func WithUserID(id string) Option { return func(t *Telemetry) { t.userID = id } }

// WithCaptureTimeout bounds a single capture call.
func WithCaptureTimeout(d time.Duration) Option { return func(t *Telemetry) { t.timeout = d } }

// WithFallbackLogger sets the logger capture failures are reported on. It
// must not itself feed into this Telemetry.
func WithFallbackLogger(l *zap.Logger) Option { return func(t *Telemetry) { t.log = l } }

// New returns a Telemetry for app delivering to sink. Nothing is captured
// until WithActivity or WithErrors is given.
func New(app string, sink Sink, opts ...Option) *Telemetry {
	t := &Telemetry{
		sink:    sink,
		app:     app,
		timeout: defaultCaptureTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.userID == "" {
		t.userID = AnonymousID(app)
	}
	return t
}

// UserID returns the distinct id events are reported under.
func (t *Telemetry) UserID() string { return t.userID }

// capture sends ev in the background. Failures are logged and dropped.
func (t *Telemetry) capture(ev Event) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		if err := t.sink.Capture(ctx, ev); err != nil {
			t.log.Warn("failed to capture telemetry event", zap.String("event", ev.Name), zap.Error(err))
		}
	}()
}

// Close waits for in-flight captures, giving up when ctx is done.
func (t *Telemetry) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
