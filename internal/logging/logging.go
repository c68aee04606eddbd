// Package logging owns the process logger of the CLI.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tensorlakeai/indexify-cli/internal/telemetry"
)

// LevelEnv overrides the level derived from -v flags.
const LevelEnv = "INDEXIFY_LOG_LEVEL"

// Options is applied once by Install.
type Options struct {
	// Verbosity is the number of -v flags given.
	Verbosity int
	// Telemetry is teed into the logger when non-nil.
	Telemetry *telemetry.Telemetry
}

// Runtime is the logging state of one process. Build it in main, install it
// from the root command and shut it down before exit.
type Runtime struct {
	level   zap.AtomicLevel
	console zapcore.Core

	mu     sync.Mutex
	once   sync.Once
	logger *zap.Logger
	tel    *telemetry.Telemetry
	env    func(string) string
}

// New returns a Runtime writing human readable entries to w. Until Install
// runs only errors are printed.
func New(w io.Writer) *Runtime {
	level := zap.NewAtomicLevelAt(zapcore.ErrorLevel)

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	console := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	return &Runtime{
		level:   level,
		console: console,
		logger:  zap.New(console),
		env:     os.Getenv,
	}
}

// Install applies opts and replaces the zap globals. Only the first call has
// any effect.
func (r *Runtime) Install(opts Options) {
	r.once.Do(func() {
		r.level.SetLevel(r.levelFor(opts.Verbosity))

		core := r.console
		if opts.Telemetry != nil {
			core = zapcore.NewTee(core, opts.Telemetry.Core())
		}
		logger := zap.New(core)

		r.mu.Lock()
		r.logger = logger
		r.tel = opts.Telemetry
		r.mu.Unlock()

		zap.ReplaceGlobals(logger)
	})
}

// Level returns the current console level.
func (r *Runtime) Level() zapcore.Level { return r.level.Level() }

// Logger returns the process logger.
func (r *Runtime) Logger() *zap.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logger
}

// Console returns a logger that writes to the console only. Telemetry
// reports its own failures here.
func (r *Runtime) Console() *zap.Logger { return zap.New(r.console) }

// Logr exposes the console logger as a logr.Logger. Verbosity changes made
// by Install apply to it.
func (r *Runtime) Logr() logr.Logger { return zapr.NewLogger(r.Console()) }

// Sync flushes the process logger.
func (r *Runtime) Sync() error {
	// stderr does not support fsync on every platform.
	if err := r.Logger().Sync(); err != nil && !isIgnorableSyncError(err) {
		return err
	}
	return nil
}

// Shutdown waits for pending telemetry and flushes the logger.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	tel := r.tel
	r.mu.Unlock()

	if tel != nil {
		if err := tel.Close(ctx); err != nil {
			r.Console().Debug("telemetry did not drain", zap.Error(err))
		}
	}
	return r.Sync()
}

func (r *Runtime) levelFor(verbosity int) zapcore.Level {
	if env := r.env(LevelEnv); env != "" {
		if lvl, err := zapcore.ParseLevel(env); err == nil {
			return lvl
		}
	}
	switch {
	case verbosity <= 0:
		return zapcore.ErrorLevel
	case verbosity == 1:
		return zapcore.WarnLevel
	case verbosity == 2:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl") ||
		strings.Contains(msg, "bad file descriptor")
}
