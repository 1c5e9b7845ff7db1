// Package metrics records page traffic of issue streams as Prometheus metrics.
//
// A Collector implements pagination.Observer and is attached to a client with
// issues.WithObserver. Metrics live in the collector's own registry and can be
// written in the text exposition format or pushed to a Pushgateway.
package metrics

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "ghissues"

// Page kinds used as the "kind" label.
const (
	KindFirst = "first"
	KindNext  = "next"
)

// Request statuses used as the "status" label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var _ pagination.Observer = (*Collector)(nil)

// Collector records page requests.
//
// Registers:
//   - <ns>_pages_total{kind,status} (counter)
//   - <ns>_items_total (counter)
//   - <ns>_page_duration_seconds{kind} (histogram)
//   - <ns>_page_errors_total{code} (counter)
type Collector struct {
	registry *prometheus.Registry

	pages    *prometheus.CounterVec
	items    prometheus.Counter
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
// An empty namespace uses DefaultNamespace.
func NewCollector(namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_total",
				Help:      "Total number of issue pages requested",
			},
			[]string{"kind", "status"},
		),
		items: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_total",
				Help:      "Total number of issues received",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "page_duration_seconds",
				Help:      "Duration of issue page requests in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"kind"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_errors_total",
				Help:      "Total number of failed issue page requests by error code",
			},
			[]string{"code"},
		),
	}

	for _, collector := range []prometheus.Collector{c.pages, c.items, c.duration, c.failures} {
		if err := c.registry.Register(collector); err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to register metric")
		}
	}

	return c, nil
}

// ObservePage records a single page request.
func (c *Collector) ObservePage(url string, items int, elapsed time.Duration, err error) {
	kind := pageKind(url)

	c.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if err != nil {
		c.pages.WithLabelValues(kind, StatusError).Inc()
		c.failures.WithLabelValues(string(errors.GetCode(err))).Inc()
		return
	}

	c.pages.WithLabelValues(kind, StatusSuccess).Inc()
	c.items.Add(float64(items))
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to gather metrics")
	}

	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to encode metrics")
		}
	}
	return nil
}

// Push sends the metrics to a Pushgateway under job.
func (c *Collector) Push(ctx context.Context, gatewayURL, job string) error {
	if gatewayURL == "" {
		err := errors.New(errors.CodeInvalidConfig, "pushgateway URL cannot be empty")
		return errors.WithContext(err, "field", "gateway_url")
	}

	if err := push.New(gatewayURL, job).Gatherer(c.registry).PushContext(ctx); err != nil {
		err := errors.Wrap(err, errors.CodeNetwork, "failed to push metrics")
		return errors.WithContext(err, "gateway_url", gatewayURL)
	}
	return nil
}

// pageKind distinguishes first-page requests, which use a path relative to
// the API root, from follow-up requests made with absolute next links.
func pageKind(url string) string {
	if strings.Contains(url, "://") {
		return KindNext
	}
	return KindFirst
}
