// Package tracing builds the OpenTelemetry tracer provider used by the
// ghissues command.
package tracing

import (
	"context"
	"net/url"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues/internal/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ShutdownFunc flushes and stops a tracer provider.
type ShutdownFunc func(context.Context) error

// NewTracerProvider returns a provider exporting spans over OTLP/HTTP, or a
// no-op provider when tracing is disabled.
func NewTracerProvider(ctx context.Context, cfg config.TracingConfig, version string, logger zerolog.Logger) (trace.TracerProvider, ShutdownFunc, error) {
	if !cfg.Enabled {
		logger.Debug().Msg("tracing disabled")
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "failed to build trace resource")
	}

	// WithEndpoint takes host:port only.
	endpoint := cfg.Endpoint
	if u, perr := url.Parse(cfg.Endpoint); perr == nil && u.Host != "" {
		endpoint = u.Host
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		err := errors.Wrap(err, errors.CodeInvalidConfig, "failed to create OTLP exporter")
		return nil, nil, errors.WithContext(err, "endpoint", cfg.Endpoint)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
	)

	logger.Debug().
		Str("endpoint", cfg.Endpoint).
		Float64("sampling_rate", cfg.SamplingRate).
		Msg("tracing enabled")

	return tp, tp.Shutdown, nil
}
