package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingSink stores every captured event.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Capture(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) captured() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func newTestLogger(t *testing.T, tel *Telemetry) *zap.Logger {
	t.Helper()
	return zap.New(tel.Core())
}

func closeTelemetry(t *testing.T, tel *Telemetry) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tel.Close(ctx))
}

func TestCore_CapturesActivity(t *testing.T) {
	sink := &recordingSink{}
	tel := New("indexify", sink, WithActivity(), WithErrors(), WithVersion("1.2.3"), WithUserID("user-1"))

	log := newTestLogger(t, tel).Named("cli")
	log.Info("run", zap.String(ActivityField, "graph::list"), zap.String("namespace", "default"))
	closeTelemetry(t, tel)

	events := sink.captured()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "indexify::activity", ev.Name)
	assert.Equal(t, "user-1", ev.DistinctID)
	assert.False(t, ev.Timestamp.IsZero())
	assert.Equal(t, "run", ev.Properties["name"])
	assert.Equal(t, "telemetry/go", ev.Properties["$lib"])
	assert.Equal(t, "info", ev.Properties["level"])
	assert.Equal(t, "cli", ev.Properties["module"])
	assert.Equal(t, "1.2.3", ev.Properties["version"])
	assert.Equal(t, "graph::list", ev.Properties["$screen_name"])
	assert.Equal(t, "default", ev.Properties["namespace"])
}

func TestCore_CapturesErrors(t *testing.T) {
	sink := &recordingSink{}
	tel := New("indexify", sink, WithErrors(), WithUserID("user-1"))

	log := newTestLogger(t, tel)
	log.Debug("command failed", zap.Error(errors.New("404 Not Found for http://localhost")))
	closeTelemetry(t, tel)

	events := sink.captured()
	require.Len(t, events, 1)
	assert.Equal(t, "indexify::event", events[0].Name)
	assert.Equal(t, "404 Not Found for http://localhost", events[0].Properties[ErrorField])
	assert.NotContains(t, events[0].Properties, "$screen_name")
}

func TestCore_IgnoresUninterestingEntries(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		log  func(*zap.Logger)
	}{
		{
			name: "plain entry",
			opts: []Option{WithActivity(), WithErrors()},
			log:  func(l *zap.Logger) { l.Info("hello", zap.Int("n", 1)) },
		},
		{
			name: "activity disabled",
			opts: []Option{WithErrors()},
			log:  func(l *zap.Logger) { l.Info("run", zap.String(ActivityField, "x")) },
		},
		{
			name: "errors disabled",
			opts: []Option{WithActivity()},
			log:  func(l *zap.Logger) { l.Error("boom", zap.Error(errors.New("x"))) },
		},
		{
			name: "nothing enabled",
			log:  func(l *zap.Logger) { l.Info("run", zap.String(ActivityField, "x")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			tel := New("indexify", sink, append(tt.opts, WithUserID("u"))...)
			tt.log(newTestLogger(t, tel))
			closeTelemetry(t, tel)
			assert.Empty(t, sink.captured())
		})
	}
}

func TestCore_WithFieldsAndRedaction(t *testing.T) {
	sink := &recordingSink{}
	tel := New("indexify", sink, WithActivity(), WithUserID("u"))

	log := newTestLogger(t, tel).With(zap.String("api_token", "abc"))
	log.Info("run", zap.String(ActivityField, "namespace::create"), zap.Any("config", map[string]any{"password": "p", "user": "me"}))
	closeTelemetry(t, tel)

	events := sink.captured()
	require.Len(t, events, 1)
	assert.Equal(t, RedactedValue, events[0].Properties["api_token"])
	assert.Equal(t, map[string]any{"password": RedactedValue, "user": "me"}, events[0].Properties["config"])
}

func TestCapture_FailureIsLoggedNotPropagated(t *testing.T) {
	sink := &recordingSink{err: errors.New("unreachable")}
	obsCore, logs := observer.New(zapcore.WarnLevel)
	tel := New("indexify", sink, WithActivity(), WithUserID("u"), WithFallbackLogger(zap.New(obsCore)))

	log := newTestLogger(t, tel)
	log.Info("run", zap.String(ActivityField, "index::list"))
	closeTelemetry(t, tel)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to capture telemetry event", entry.Message)
	assert.Equal(t, "unreachable", entry.ContextMap()["error"])
}

type blockingSink struct{ release chan struct{} }

func (s *blockingSink) Capture(ctx context.Context, _ Event) error {
	select {
	case <-s.release:
	case <-ctx.Done():
	}
	return nil
}

func TestClose_HonoursContext(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	tel := New("indexify", sink, WithActivity(), WithUserID("u"))
	newTestLogger(t, tel).Info("run", zap.String(ActivityField, "x"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tel.Close(ctx), context.DeadlineExceeded)

	close(sink.release)
	closeTelemetry(t, tel)
}

func TestDeriveID(t *testing.T) {
	a := deriveID("indexify", "machine-a")
	b := deriveID("indexify", "machine-b")

	assert.Equal(t, a, deriveID("indexify", "machine-a"), "id must be stable")
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "machine")

	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestAnonymousID_DefaultsUserID(t *testing.T) {
	tel := New("indexify", &recordingSink{})
	assert.Equal(t, AnonymousID("indexify"), tel.UserID())
}

func TestPostHog_Capture(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/capture/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer srv.Close()

	ph := NewPostHog("phc_key", srv.URL+"/", nil)
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := ph.Capture(context.Background(), Event{
		Name:       "indexify::activity",
		DistinctID: "user-1",
		Properties: map[string]any{"$screen_name": "graph::list"},
		Timestamp:  ts,
	})
	require.NoError(t, err)

	assert.Equal(t, "phc_key", received["api_key"])
	assert.Equal(t, "indexify::activity", received["event"])
	assert.Equal(t, "user-1", received["distinct_id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", received["timestamp"])
	assert.Equal(t, map[string]any{"$screen_name": "graph::list"}, received["properties"])
}

func TestPostHog_CaptureError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewPostHog("bad", srv.URL, nil).Capture(context.Background(), Event{Name: "x"})
	assert.ErrorContains(t, err, "posthog returned 401")
}

func TestRedactSensitiveProperties(t *testing.T) {
	in := map[string]any{"Password": "p", "name": "n", "nested": map[string]any{"secret_key": "s"}}
	out := RedactSensitiveProperties(in)

	assert.Equal(t, RedactedValue, out["Password"])
	assert.Equal(t, "n", out["name"])
	assert.Equal(t, map[string]any{"secret_key": RedactedValue}, out["nested"])
	assert.Equal(t, "p", in["Password"], "input must not be modified")
	assert.Nil(t, RedactSensitiveProperties(nil))
}
