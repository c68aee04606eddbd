// Package config resolves the global settings of the CLI from flags,
// environment variables, an optional config file and defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Each is also the name of the global flag that sets it and,
// upper-cased with the INDEXIFY_ prefix, of its environment variable.
const (
	KeyAPIServer = "api-server"
	KeyOutput    = "output"
	KeyNamespace = "namespace"
	KeyTelemetry = "telemetry"
	KeyVerbose   = "verbose"
)

const (
	EnvPrefix        = "INDEXIFY"
	DefaultAPIServer = "http://localhost:8900"
	DefaultNamespace = "default"
	DefaultOutput    = "table"
)

// Settings are the resolved global settings.
type Settings struct {
	APIServer string
	Output    string
	Namespace string
	Telemetry bool
	Verbosity int
}

// NewViper returns a viper instance with the environment bindings and
// defaults of the CLI.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIServer, DefaultAPIServer)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyNamespace, DefaultNamespace)
	v.SetDefault(KeyTelemetry, true)
	v.SetDefault(KeyVerbose, 0)
	return v
}

// BindFlags binds the global flags found in flags to their settings.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyAPIServer, KeyOutput, KeyNamespace, KeyTelemetry, KeyVerbose} {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// ReadFile loads the config file at path. With an empty path the default
// location is tried and silently skipped when absent.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		path = DefaultFile()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// DefaultFile is the config file read when --config is not given.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "indexify", "config.yaml")
}

// Load returns the resolved settings.
func Load(v *viper.Viper) Settings {
	return Settings{
		APIServer: v.GetString(KeyAPIServer),
		Output:    v.GetString(KeyOutput),
		Namespace: v.GetString(KeyNamespace),
		Telemetry: v.GetBool(KeyTelemetry),
		Verbosity: v.GetInt(KeyVerbose),
	}
}

// PostHogAPIKey is the telemetry key baked in at link time with
// -ldflags "-X github.com/tensorlakeai/indexify-cli/internal/config.PostHogAPIKey=...".
var PostHogAPIKey string

// TelemetryConfig holds the environment-only telemetry settings.
type TelemetryConfig struct {
	APIKey string `env:"POSTHOG_API_KEY"`
	Host   string `env:"INDEXIFY_TELEMETRY_HOST" envDefault:"https://app.posthog.com"`
}

// LoadTelemetry reads TelemetryConfig from the environment, falling back to
// the link-time key.
func LoadTelemetry() (TelemetryConfig, error) {
	return parseTelemetry(env.Options{})
}

func parseTelemetry(opts env.Options) (TelemetryConfig, error) {
	var cfg TelemetryConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return TelemetryConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = PostHogAPIKey
	}
	return cfg, nil
}

// Enabled reports whether events can be delivered at all.
func (c TelemetryConfig) Enabled() bool { return c.APIKey != "" }
