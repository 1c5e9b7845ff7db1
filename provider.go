package issues

import "context"

//go:generate go run github.com/matryer/moq@latest -out mocks/provider.go -pkg mocks . Provider

// Connection executes paginated list requests. It is the only I/O boundary
// used by issue streams.
//
// url is either relative to the API root (first page) or an absolute URL taken
// from a previous page's next-link. params and accept are only non-empty for
// the first page of a stream. Implementations must fill IssuePage.Info.Links
// from the response so that traversal can continue.
type Connection interface {
	GetPage(ctx context.Context, url string, params map[string]string, accept string) (*IssuePage, error)
}

// IssueService performs single-issue operations.
type IssueService interface {
	// GetIssue retrieves a specific issue by number.
	// Fails with errors.CodeNotFound if the issue does not exist.
	GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error)

	// CreateIssue creates a new issue.
	// Fails with errors.CodeInvalidInput if required fields are missing or invalid.
	CreateIssue(ctx context.Context, owner, repo string, issue NewIssue) (*Issue, error)

	// UpdateIssue updates an existing issue.
	// Only non-nil fields in update are sent.
	UpdateIssue(ctx context.Context, owner, repo string, number int, update IssueUpdate) (*Issue, error)
}

// Provider defines the interface for interacting with GitHub issues.
// Implementations include the SDK provider (using go-github) and the CLI
// provider (using gh CLI).
//
// The provider abstracts the underlying GitHub API implementation so that a
// Client can be backed by either, and so that tests can substitute a mock
// (see the mocks package). Errors returned by a provider are passed to callers
// unchanged.
type Provider interface {
	Connection
	IssueService
}
