// Package config loads the ghissues command configuration from an optional
// YAML file and the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jmgilman/go/errors"
)

// Provider names.
const (
	ProviderSDK = "sdk"
	ProviderCLI = "cli"
)

// Output formats.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Config is the complete ghissues configuration.
//
// Values are read from the YAML file (when given) and then overridden by
// environment variables. Command line flags override both.
type Config struct {
	// Token authenticates the SDK provider. The CLI provider uses gh's own
	// credentials.
	Token string `yaml:"token" env:"GITHUB_TOKEN"`

	// Provider selects the backend: "sdk" (go-github) or "cli" (gh).
	Provider string `yaml:"provider" env:"GHISSUES_PROVIDER" env-default:"sdk" validate:"oneof=sdk cli"`

	// BaseURL is a GitHub Enterprise Server URL for the SDK provider.
	BaseURL string `yaml:"baseURL" env:"GHISSUES_BASE_URL" validate:"omitempty,url"`

	// Hostname is a GitHub Enterprise Server host for the CLI provider.
	Hostname string `yaml:"hostname" env:"GHISSUES_HOSTNAME"`

	// Accept is the media type requested for the first page of list requests.
	Accept string `yaml:"accept" env:"GHISSUES_ACCEPT"`

	// Timeout bounds a whole command.
	Timeout time.Duration `yaml:"timeout" env:"GHISSUES_TIMEOUT" env-default:"60s" validate:"gt=0"`

	// Output is the record format: "yaml" or "json".
	Output string `yaml:"output" env:"GHISSUES_OUTPUT" env-default:"yaml" validate:"oneof=yaml json"`

	Logging LoggingConfig `yaml:"logging"`
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"GHISSUES_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"GHISSUES_LOG_FORMAT" env-default:"console" validate:"oneof=console json"`

	// File enables logging to a rotated file instead of stderr.
	File       string `yaml:"file" env:"GHISSUES_LOG_FILE"`
	MaxSize    int    `yaml:"maxSize" env:"GHISSUES_LOG_MAX_SIZE" env-default:"100" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" env:"GHISSUES_LOG_MAX_BACKUPS" env-default:"3" validate:"gte=0"`
	MaxAge     int    `yaml:"maxAge" env:"GHISSUES_LOG_MAX_AGE" env-default:"7" validate:"gte=0"`
	Compress   bool   `yaml:"compress" env:"GHISSUES_LOG_COMPRESS" env-default:"true"`
}

// TracingConfig configures OTLP trace export.
type TracingConfig struct {
	Enabled      bool          `yaml:"enabled" env:"GHISSUES_TRACING_ENABLED" env-default:"false"`
	Endpoint     string        `yaml:"endpoint" env:"GHISSUES_TRACING_ENDPOINT" validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string        `yaml:"serviceName" env:"GHISSUES_TRACING_SERVICE_NAME" env-default:"ghissues"`
	Insecure     bool          `yaml:"insecure" env:"GHISSUES_TRACING_INSECURE" env-default:"false"`
	Timeout      time.Duration `yaml:"timeout" env:"GHISSUES_TRACING_TIMEOUT" env-default:"5s" validate:"gt=0"`
	SamplingRate float64       `yaml:"samplingRate" env:"GHISSUES_TRACING_SAMPLING_RATE" env-default:"1.0" validate:"gte=0,lte=1"`
}

// MetricsConfig configures page metrics.
type MetricsConfig struct {
	// Enabled dumps the metrics to stderr when the command exits.
	Enabled bool `yaml:"enabled" env:"GHISSUES_METRICS" env-default:"false"`

	// PushgatewayURL, when set, pushes the metrics to a Prometheus Pushgateway.
	PushgatewayURL string `yaml:"pushgatewayURL" env:"GHISSUES_PUSHGATEWAY_URL" validate:"omitempty,url"`
	Job            string `yaml:"job" env:"GHISSUES_METRICS_JOB" env-default:"ghissues"`
	Namespace      string `yaml:"namespace" env:"GHISSUES_METRICS_NAMESPACE" env-default:"ghissues"`
}

// Load reads the configuration. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			err := errors.Wrap(err, errors.CodeInvalidConfig, "failed to read configuration file")
			return nil, errors.WithContext(err, "path", path)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to read configuration from environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its rules.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.WrapWithContext(err, errors.CodeInvalidConfig,
			fmt.Sprintf("invalid configuration: %s failed %q", fe.Namespace(), fe.Tag()),
			map[string]interface{}{"field": fe.Namespace()})
	}

	return errors.Wrap(err, errors.CodeInvalidConfig, "invalid configuration")
}

// Usage describes every environment variable, for help output.
func Usage() (string, error) {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to describe configuration")
	}
	return desc, nil
}
