// Package sdk provides an issues provider implementation using the go-github SDK.
//
// This package implements the issues.Provider interface by wrapping the
// github.com/google/go-github/v67 SDK. Page requests go through the SDK's
// low-level NewRequest/Do pair so that next links returned by the API can be
// followed verbatim.
package sdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues"
	"github.com/jmgilman/go/issues/internal/convert"
)

// SDKProvider implements issues.Provider using the go-github SDK.
type SDKProvider struct {
	client *github.Client
}

// NewSDKProvider creates a provider using the GitHub SDK.
//
// Example with token authentication:
//
//	provider, err := sdk.NewSDKProvider(sdk.WithToken("ghp_..."))
//
// Example with custom client:
//
//	httpClient := &http.Client{Timeout: 30 * time.Second}
//	ghClient := github.NewClient(httpClient)
//	provider, err := sdk.NewSDKProvider(sdk.WithClient(ghClient))
func NewSDKProvider(opts ...Option) (*SDKProvider, error) {
	cfg := &config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.client == nil {
		if cfg.token == "" {
			err := errors.New(errors.CodeInvalidInput, "either token or client must be provided")
			return nil, errors.WithContext(err, "field", "token or client")
		}
		cfg.client = github.NewClient(nil).WithAuthToken(cfg.token)
	}

	if cfg.baseURL != "" {
		client, err := cfg.client.WithEnterpriseURLs(cfg.baseURL, cfg.baseURL)
		if err != nil {
			err := errors.Wrap(err, errors.CodeInvalidConfig, "invalid API base URL")
			return nil, errors.WithContext(err, "base_url", cfg.baseURL)
		}
		cfg.client = client
	}

	return &SDKProvider{
		client: cfg.client,
	}, nil
}

type config struct {
	client  *github.Client
	token   string
	baseURL string
}

// Option configures the SDK provider.
type Option func(*config) error

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(cfg *config) error {
		if token == "" {
			err := errors.New(errors.CodeInvalidInput, "token cannot be empty")
			return errors.WithContext(err, "field", "token")
		}
		cfg.token = token
		return nil
	}
}

// WithClient uses client as is, for callers that need their own transport or
// GitHub App authentication.
func WithClient(client *github.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			err := errors.New(errors.CodeInvalidInput, "client cannot be nil")
			return errors.WithContext(err, "field", "client")
		}
		cfg.client = client
		return nil
	}
}

// WithBaseURL points the provider at a GitHub Enterprise Server API root.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		cfg.baseURL = baseURL
		return nil
	}
}

// GetPage requests a single page of issues.
//
// params are merged into the query string of rawURL. When accept is not
// empty it replaces the SDK's default Accept header.
func (s *SDKProvider) GetPage(ctx context.Context, rawURL string, params map[string]string, accept string) (*issues.IssuePage, error) {
	target, err := withQuery(rawURL, params)
	if err != nil {
		return nil, err
	}

	req, err := s.client.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		err := errors.Wrap(err, errors.CodeInvalidInput, "failed to build page request")
		return nil, errors.WithContext(err, "url", rawURL)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	var items []*github.Issue
	resp, err := s.client.Do(ctx, req, &items)
	if err != nil {
		return nil, errors.WithContext(s.wrapError(err, resp, "failed to get issue page"), "url", rawURL)
	}

	return &issues.IssuePage{
		Items: convert.Issues(items),
		Info:  convert.PageInfo(resp.Header),
	}, nil
}

// GetIssue fetches repos/{owner}/{repo}/issues/{number}.
func (s *SDKProvider) GetIssue(ctx context.Context, owner, repo string, number int) (*issues.Issue, error) {
	issue, resp, err := s.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to get issue")
	}

	return convert.Issue(issue), nil
}

// CreateIssue posts issue to the repository's issue list.
func (s *SDKProvider) CreateIssue(ctx context.Context, owner, repo string, issue issues.NewIssue) (*issues.Issue, error) {
	created, resp, err := s.client.Issues.Create(ctx, owner, repo, convert.IssueRequest(issue))
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to create issue")
	}

	return convert.Issue(created), nil
}

// UpdateIssue patches the fields set in update.
func (s *SDKProvider) UpdateIssue(ctx context.Context, owner, repo string, number int, update issues.IssueUpdate) (*issues.Issue, error) {
	updated, resp, err := s.client.Issues.Edit(ctx, owner, repo, number, convert.UpdateRequest(update))
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to update issue")
	}

	return convert.Issue(updated), nil
}

// wrapError classifies a go-github failure by response status. Errors without
// a response are treated as network failures.
func (s *SDKProvider) wrapError(err error, resp *github.Response, message string) error {
	if err == nil {
		return nil
	}

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		statusCode = ghErr.Response.StatusCode
	}

	// Primary and secondary rate limits are reported as 403 by the API.
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		statusCode = http.StatusTooManyRequests
	}

	if statusCode != 0 {
		return issues.WrapHTTPError(err, statusCode, message)
	}

	return errors.Wrap(err, errors.CodeNetwork, message)
}

// withQuery merges params into the query string of rawURL.
func withQuery(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		err := errors.Wrap(err, errors.CodeInvalidInput, "invalid page URL")
		return "", errors.WithContext(err, "url", rawURL)
	}

	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}
