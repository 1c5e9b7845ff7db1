package pagination

import (
	"context"
	"iter"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/rs/zerolog"
)

// FetchFunc retrieves a single page.
// params and accept are empty for every request after the first one.
type FetchFunc[T any] func(ctx context.Context, url string, params map[string]string, accept string) (*Page[T], error)

// Observer is notified after every page request.
// err is nil for successful requests.
type Observer interface {
	ObservePage(url string, items int, elapsed time.Duration, err error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(url string, items int, elapsed time.Duration, err error)

// ObservePage calls f.
func (f ObserverFunc) ObservePage(url string, items int, elapsed time.Duration, err error) {
	f(url, items, elapsed, err)
}

type settings struct {
	logger   zerolog.Logger
	observer Observer
}

// Option configures a Paginator.
type Option func(*settings)

// WithLogger sets the logger used for per-page debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithObserver registers an observer for page requests.
func WithObserver(observer Observer) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// Paginator follows next-links from a starting URL.
// A Paginator holds no traversal state and may be shared; every call to Pages
// or Items starts an independent traversal.
type Paginator[T any] struct {
	fetch    FetchFunc[T]
	logger   zerolog.Logger
	observer Observer
}

// New creates a Paginator that retrieves pages with fetch.
func New[T any](fetch FetchFunc[T], opts ...Option) *Paginator[T] {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}

	return &Paginator[T]{
		fetch:    fetch,
		logger:   s.logger,
		observer: s.observer,
	}
}

// Pages returns the lazy sequence of pages starting at url.
//
// Nothing is requested until the sequence is iterated. The sequence ends after
// the first page without a next-link, or after yielding the first error, which
// is returned exactly as produced by the FetchFunc.
func (p *Paginator[T]) Pages(ctx context.Context, url string, params map[string]string, accept string) iter.Seq2[*Page[T], error] {
	return func(yield func(*Page[T], error) bool) {
		next, query, media := url, params, accept

		for n := 1; ; n++ {
			if err := ctx.Err(); err != nil {
				yield(nil, cancelled(err, next, n))
				return
			}

			start := time.Now()
			page, err := p.fetch(ctx, next, query, media)
			elapsed := time.Since(start)

			if err != nil {
				p.observe(next, 0, elapsed, err)
				p.logger.Debug().Err(err).Str("url", next).Int("page", n).Msg("page request failed")
				yield(nil, err)
				return
			}
			if page == nil {
				page = &Page[T]{}
			}

			p.observe(next, len(page.Items), elapsed, nil)
			p.logger.Debug().
				Str("url", next).
				Int("page", n).
				Int("items", len(page.Items)).
				Dur("took", elapsed).
				Msg("page fetched")

			if !yield(page, nil) {
				return
			}

			link, ok := page.NextLink()
			if !ok {
				return
			}
			next, query, media = link, nil, ""
		}
	}
}

// Items returns the items of every page starting at url as one lazy sequence.
func (p *Paginator[T]) Items(ctx context.Context, url string, params map[string]string, accept string) iter.Seq2[T, error] {
	return Flatten(p.Pages(ctx, url, params, accept))
}

func (p *Paginator[T]) observe(url string, items int, elapsed time.Duration, err error) {
	if p.observer != nil {
		p.observer.ObservePage(url, items, elapsed, err)
	}
}

func cancelled(err error, url string, page int) error {
	code := errors.CodeInternal
	if errors.Is(err, context.DeadlineExceeded) {
		code = errors.CodeTimeout
	}

	wrapped := errors.Wrap(err, code, "pagination stopped before page request")
	wrapped = errors.WithContext(wrapped, "url", url)
	return errors.WithContext(wrapped, "page", page)
}
