package logging

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tensorlakeai/indexify-cli/internal/telemetry"
)

func newRuntime(env map[string]string) (*Runtime, *bytes.Buffer) {
	var buf bytes.Buffer
	r := New(&buf)
	r.env = func(k string) string { return env[k] }
	return r, &buf
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		env       string
		want      zapcore.Level
	}{
		{"default", 0, "", zapcore.ErrorLevel},
		{"one v", 1, "", zapcore.WarnLevel},
		{"two v", 2, "", zapcore.InfoLevel},
		{"three v", 3, "", zapcore.DebugLevel},
		{"many v", 7, "", zapcore.DebugLevel},
		{"env override", 0, "debug", zapcore.DebugLevel},
		{"env beats flags", 3, "warn", zapcore.WarnLevel},
		{"bad env ignored", 2, "loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRuntime(map[string]string{LevelEnv: tt.env})
			assert.Equal(t, tt.want, r.levelFor(tt.verbosity))
		})
	}
}

func TestInstall_AppliesOnce(t *testing.T) {
	r, buf := newRuntime(nil)
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	r.Install(Options{Verbosity: 2})
	r.Install(Options{Verbosity: 0})

	assert.Equal(t, zapcore.InfoLevel, r.Level())
	assert.Same(t, r.Logger(), zap.L())

	zap.L().Info("hello", zap.String("k", "v"))
	zap.L().Debug("hidden")
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLogr_FollowsLevel(t *testing.T) {
	r, buf := newRuntime(nil)
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	log := r.Logr()
	log.V(1).Info("before install")
	assert.Empty(t, buf.String())

	r.Install(Options{Verbosity: 3})
	log.V(1).Info("after install")
	assert.Contains(t, buf.String(), "after install")
}

type countingSink struct {
	mu sync.Mutex
	n  int
}

func (s *countingSink) Capture(context.Context, telemetry.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return nil
}

func TestInstall_TeesTelemetry(t *testing.T) {
	r, buf := newRuntime(nil)
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	sink := &countingSink{}
	tel := telemetry.New("indexify", sink, telemetry.WithActivity(), telemetry.WithUserID("u"))
	r.Install(Options{Telemetry: tel})

	zap.L().Info("run", zap.String(telemetry.ActivityField, "graph::list"))
	require.NoError(t, r.Shutdown(context.Background()))

	assert.Equal(t, 1, sink.n)
	assert.Empty(t, buf.String(), "info must stay off the console at the default level")
}
