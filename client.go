package issues

import (
	"context"

	"github.com/jmgilman/go/issues/pagination"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jmgilman/go/issues"

// Client provides issue operations on top of a Provider.
// List operations return lazy streams that follow pagination links;
// single-issue operations delegate directly to the provider.
//
// Every method validates its arguments before any request is made. A Client
// is safe for concurrent use; the streams it returns are not.
//
// Example usage:
//
//	provider, err := sdk.NewSDKProvider(sdk.WithToken("ghp_..."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := issues.NewClient(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream, err := client.GetForRepository(ctx, "owner", "repo", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for issue, err := range stream.All() {
//	    ...
//	}
type Client struct {
	provider  Provider
	paginator *pagination.Paginator[*Issue]
	logger    zerolog.Logger
	tracer    trace.Tracer
	accept    string
}

type clientConfig struct {
	logger         zerolog.Logger
	observer       pagination.Observer
	tracerProvider trace.TracerProvider
	accept         string
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// WithObserver registers an observer that is notified of every page request.
func WithObserver(observer pagination.Observer) ClientOption {
	return func(cfg *clientConfig) {
		cfg.observer = observer
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(cfg *clientConfig) {
		cfg.tracerProvider = tp
	}
}

// WithAccept sets the media type requested for the first page of every list
// request (e.g. a preview media type). Later pages are requested without it.
func WithAccept(mediaType string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.accept = mediaType
	}
}

// NewClient creates a new Client backed by provider.
func NewClient(provider Provider, opts ...ClientOption) (*Client, error) {
	if provider == nil {
		return nil, newArgumentNullError("provider")
	}

	cfg := clientConfig{
		logger:         zerolog.Nop(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Client{
		provider: provider,
		logger:   cfg.logger.With().Str("component", "issues").Logger(),
		tracer:   cfg.tracerProvider.Tracer(tracerName),
		accept:   cfg.accept,
	}

	popts := []pagination.Option{pagination.WithLogger(c.logger)}
	if cfg.observer != nil {
		popts = append(popts, pagination.WithObserver(cfg.observer))
	}
	c.paginator = pagination.New(c.fetchPage, popts...)

	return c, nil
}

// Provider returns the underlying Provider.
// This is an escape hatch for operations not covered by the Client.
func (c *Client) Provider() Provider {
	return c.provider
}

// Get retrieves a single issue.
//
// Example:
//
//	issue, err := client.Get(ctx, "owner", "repo", 42)
func (c *Client) Get(ctx context.Context, owner, repo string, number int) (*Issue, error) {
	if err := ensureRepository(owner, repo); err != nil {
		return nil, err
	}
	if err := ensurePositive("number", number); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "issues.Get", trace.WithAttributes(issueAttributes(owner, repo, number)...))
	issue, err := c.provider.GetIssue(ctx, owner, repo, number)
	endSpan(span, err)

	return issue, err
}

// GetForRepository streams the issues of a repository.
// A nil request uses NewRepositoryIssueRequest().
func (c *Client) GetForRepository(ctx context.Context, owner, repo string, request *RepositoryIssueRequest) (*IssueStream, error) {
	if err := ensureRepository(owner, repo); err != nil {
		return nil, err
	}
	if request == nil {
		request = NewRepositoryIssueRequest()
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return c.stream(ctx, repositoryIssuesURL(owner, repo), request.ToParameters()), nil
}

// GetAllForOrganization streams the issues of an organization visible to the
// authenticated user. A nil request uses NewIssueRequest().
func (c *Client) GetAllForOrganization(ctx context.Context, org string, request *IssueRequest) (*IssueStream, error) {
	if err := ensureNotBlank("org", org); err != nil {
		return nil, err
	}

	return c.list(ctx, organizationIssuesURL(org), request)
}

// GetAllForCurrent streams the issues assigned to the authenticated user
// across all visible repositories, including owned, member and organization
// repositories. A nil request uses NewIssueRequest().
func (c *Client) GetAllForCurrent(ctx context.Context, request *IssueRequest) (*IssueStream, error) {
	return c.list(ctx, currentUserIssuesURL, request)
}

// GetAllForOwnedAndMemberRepositories streams the issues of repositories the
// authenticated user owns or is a member of. A nil request uses
// NewIssueRequest().
func (c *Client) GetAllForOwnedAndMemberRepositories(ctx context.Context, request *IssueRequest) (*IssueStream, error) {
	return c.list(ctx, ownedAndMemberIssuesURL, request)
}

// Create creates an issue in the repository.
//
// Example:
//
//	issue, err := client.Create(ctx, "owner", "repo", &issues.NewIssue{
//	    Title:  "Bug title",
//	    Labels: []string{"bug"},
//	})
func (c *Client) Create(ctx context.Context, owner, repo string, issue *NewIssue) (*Issue, error) {
	if err := ensureRepository(owner, repo); err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, newArgumentNullError("issue")
	}
	if err := validateStruct("issue", issue); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "issues.Create", trace.WithAttributes(repositoryAttributes(owner, repo)...))
	created, err := c.provider.CreateIssue(ctx, owner, repo, *issue)
	endSpan(span, err)

	if err == nil && created != nil {
		c.logger.Debug().Str("owner", owner).Str("repo", repo).Int("number", created.Number).Msg("issue created")
	}
	return created, err
}

// Update applies update to an existing issue.
func (c *Client) Update(ctx context.Context, owner, repo string, number int, update *IssueUpdate) (*Issue, error) {
	if err := ensureRepository(owner, repo); err != nil {
		return nil, err
	}
	if err := ensurePositive("number", number); err != nil {
		return nil, err
	}
	if update == nil {
		return nil, newArgumentNullError("update")
	}
	if err := validateStruct("update", update); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "issues.Update", trace.WithAttributes(issueAttributes(owner, repo, number)...))
	updated, err := c.provider.UpdateIssue(ctx, owner, repo, number, *update)
	endSpan(span, err)

	return updated, err
}

func (c *Client) list(ctx context.Context, url string, request *IssueRequest) (*IssueStream, error) {
	if request == nil {
		request = NewIssueRequest()
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return c.stream(ctx, url, request.ToParameters()), nil
}

func (c *Client) stream(ctx context.Context, url string, params map[string]string) *IssueStream {
	c.logger.Debug().Str("url", url).Interface("params", params).Msg("opening issue stream")
	return pagination.NewStream(c.paginator.Items(ctx, url, params, c.accept))
}

// fetchPage wraps a single page request in a span.
func (c *Client) fetchPage(ctx context.Context, url string, params map[string]string, accept string) (*IssuePage, error) {
	ctx, span := c.tracer.Start(ctx, "issues.GetPage", trace.WithAttributes(
		attribute.String("issues.url", url),
		attribute.Int("issues.params", len(params)),
	))

	page, err := c.provider.GetPage(ctx, url, params, accept)
	if err == nil && page != nil {
		span.SetAttributes(attribute.Int("issues.items", len(page.Items)))
		if next, ok := page.NextLink(); ok {
			span.SetAttributes(attribute.String("issues.next", next))
		}
	}
	endSpan(span, err)

	return page, err
}

func repositoryAttributes(owner, repo string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("issues.owner", owner),
		attribute.String("issues.repo", repo),
	}
}

func issueAttributes(owner, repo string, number int) []attribute.KeyValue {
	return append(repositoryAttributes(owner, repo), attribute.Int("issues.number", number))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
