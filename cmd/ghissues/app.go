package main

import (
	"context"
	"io"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues"
	"github.com/jmgilman/go/issues/internal/config"
	"github.com/jmgilman/go/issues/internal/logging"
	"github.com/jmgilman/go/issues/internal/tracing"
	"github.com/jmgilman/go/issues/metrics"
	"github.com/jmgilman/go/issues/providers/cli"
	"github.com/jmgilman/go/issues/providers/sdk"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jmgilman/go/issues/cmd/ghissues"

// environment holds the process dependencies of a run.
type environment struct {
	stdout      io.Writer
	stderr      io.Writer
	newProvider func(ctx context.Context, cfg *config.Config) (issues.Provider, error)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath  string
	provider    string
	output      string
	accept      string
	logLevel    string
	metrics     bool
	metricsPush string
}

func (f *commonFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to a YAML configuration file")
	fs.StringVar(&f.provider, "provider", "", "backend to use: sdk or cli")
	fs.StringVarP(&f.output, "output", "o", "", "output format: yaml or json")
	fs.StringVar(&f.accept, "accept", "", "media type requested for the first page of a list")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&f.metrics, "metrics", false, "write page metrics to stderr on exit")
	fs.StringVar(&f.metricsPush, "metrics-push", "", "push page metrics to this Pushgateway URL on exit")
}

// apply overrides cfg with the flags that were set on the command line.
func (f *commonFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("provider") {
		cfg.Provider = f.provider
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("accept") {
		cfg.Accept = f.accept
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fs.Changed("metrics") {
		cfg.Metrics.Enabled = f.metrics
	}
	if fs.Changed("metrics-push") {
		cfg.Metrics.PushgatewayURL = f.metricsPush
	}
	return cfg.Validate()
}

// app is a fully wired command environment.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	client    *issues.Client
	collector *metrics.Collector
	tracer    trace.Tracer
	out       *recordWriter
	stderr    io.Writer

	closers []func(context.Context) error
}

// setup loads configuration and builds the logger, tracer, metrics and client.
func setup(ctx context.Context, env environment, fs *pflag.FlagSet, flags *commonFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := flags.apply(fs, cfg); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		out:    newRecordWriter(cfg.Output, env.stdout),
		stderr: env.stderr,
	}
	a.closers = append(a.closers, func(context.Context) error { return logCloser.Close() })

	tp, shutdown, err := tracing.NewTracerProvider(ctx, cfg.Tracing, version, logger)
	if err != nil {
		return nil, a.fail(ctx, err)
	}
	a.closers = append(a.closers, shutdown)
	a.tracer = tp.Tracer(instrumentationName)

	opts := []issues.ClientOption{
		issues.WithLogger(logger),
		issues.WithTracerProvider(tp),
	}
	if cfg.Accept != "" {
		opts = append(opts, issues.WithAccept(cfg.Accept))
	}
	if cfg.Metrics.Enabled || cfg.Metrics.PushgatewayURL != "" {
		a.collector, err = metrics.NewCollector(cfg.Metrics.Namespace)
		if err != nil {
			return nil, a.fail(ctx, err)
		}
		opts = append(opts, issues.WithObserver(a.collector))
	}

	provider, err := env.newProvider(ctx, cfg)
	if err != nil {
		return nil, a.fail(ctx, err)
	}

	a.client, err = issues.NewClient(provider, opts...)
	if err != nil {
		return nil, a.fail(ctx, err)
	}

	logger.Debug().Str("provider", cfg.Provider).Str("output", cfg.Output).Msg("client ready")
	return a, nil
}

// fail releases what setup created so far and returns err.
func (a *app) fail(ctx context.Context, err error) error {
	_ = a.close(ctx)
	return err
}

// close flushes output and metrics, then releases resources in reverse order.
func (a *app) close(ctx context.Context) error {
	var errs []error

	if a.out != nil {
		errs = append(errs, a.out.Close())
	}

	if a.collector != nil {
		if a.cfg.Metrics.Enabled {
			errs = append(errs, a.collector.WriteText(a.stderr))
		}
		if a.cfg.Metrics.PushgatewayURL != "" {
			if err := a.collector.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job); err != nil {
				a.logger.Warn().Err(err).Msg("failed to push metrics")
			}
		}
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// newProvider builds the provider selected by cfg.
func newProvider(_ context.Context, cfg *config.Config) (issues.Provider, error) {
	switch cfg.Provider {
	case config.ProviderCLI:
		var opts []cli.Option
		if cfg.Hostname != "" {
			opts = append(opts, cli.WithHostname(cfg.Hostname))
		}
		provider, err := cli.NewCLIProvider(opts...)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case config.ProviderSDK, "":
		opts := []sdk.Option{}
		if cfg.Token != "" {
			opts = append(opts, sdk.WithToken(cfg.Token))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, sdk.WithBaseURL(cfg.BaseURL))
		}
		provider, err := sdk.NewSDKProvider(opts...)
		if err != nil {
			return nil, errors.WithContext(err, "hint", "set GITHUB_TOKEN or use --provider cli")
		}
		return provider, nil
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unknown provider %q", cfg.Provider)
	}
}

// parseRepository splits "owner/name".
func parseRepository(value string) (string, string, error) {
	owner, repo, ok := strings.Cut(value, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", errors.Newf(errors.CodeInvalidInput, "invalid repository %q, expected owner/name", value)
	}
	return owner, repo, nil
}
