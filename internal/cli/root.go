package cli

import (
	"io"

	"go.uber.org/zap"

	"github.com/tensorlakeai/indexify-cli/internal/client"
	"github.com/tensorlakeai/indexify-cli/internal/config"
	"github.com/tensorlakeai/indexify-cli/internal/logging"
	"github.com/tensorlakeai/indexify-cli/internal/output"
	"github.com/tensorlakeai/indexify-cli/internal/telemetry"
	"github.com/tensorlakeai/indexify-cli/pkg/dispatch"
	"github.com/tensorlakeai/indexify-cli/pkg/tenancy"
)

// AppName names the CLI in telemetry events.
const AppName = "indexify"

// Version is set at link time.
var Version = "dev"

// Globals are the settings shared by every leaf. They are built once per
// invocation and never modified afterwards.
type Globals struct {
	Client    *client.Client
	Format    output.Format
	Namespace string
	Out       io.Writer
}

// Root is the top of the command tree. Its hooks bracket the whole walk:
// PreRun sets up logging and telemetry, PostRun flushes them.
//
//dispatch:command
type Root struct {
	dispatch.Base

	Cmd RootCmd `dispatch:"subcommand"`

	Runtime   *logging.Runtime
	Settings  config.Settings
	Telemetry config.TelemetryConfig
}

// RootCmd selects the command group. The argument parser sets exactly one
// alternative.
//
//dispatch:selector
type RootCmd struct {
	Content   *Content
	Extractor *Extractor
	Graph     *Graph
	Index     *Index
	Namespace *Namespace
}

func (r *Root) PreRun() error {
	var tel *telemetry.Telemetry
	if r.Settings.Telemetry && r.Telemetry.Enabled() {
		tel = telemetry.New(AppName,
			telemetry.NewPostHog(r.Telemetry.APIKey, r.Telemetry.Host, nil),
			telemetry.WithActivity(),
			telemetry.WithErrors(),
			telemetry.WithVersion(Version),
			telemetry.WithFallbackLogger(r.Runtime.Console()),
		)
	}
	r.Runtime.Install(logging.Options{
		Verbosity: r.Settings.Verbosity,
		Telemetry: tel,
	})

	if _, err := tenancy.Resolve(r.Settings.Namespace); err != nil {
		return err
	}

	zap.L().Debug("settings resolved",
		zap.String("api_server", r.Settings.APIServer),
		zap.String("namespace", r.Settings.Namespace),
		zap.String("output", r.Settings.Output),
		zap.Bool("telemetry", tel != nil),
	)
	return nil
}

func (r *Root) PostRun() error {
	return r.Runtime.Sync()
}

// activity records that a leaf ran. Telemetry counts these entries.
func activity(name string, fields ...zap.Field) {
	zap.L().Info("running command", append([]zap.Field{zap.String(telemetry.ActivityField, name)}, fields...)...)
}
