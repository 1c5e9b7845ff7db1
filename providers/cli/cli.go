//nolint:contextcheck // Context is properly passed via CommandWrapper.WithContext() but linter cannot verify
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/textproto"
	"slices"
	"strconv"
	"strings"

	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/exec"
	"github.com/jmgilman/go/issues"
	"github.com/jmgilman/go/issues/internal/convert"
)

// Option configures the CLI provider.
type Option func(*CLIProvider) error

// CLIProvider implements issues.Provider using the gh CLI.
// Every request goes through `gh api`, so authentication and host
// selection follow the gh configuration.
type CLIProvider struct {
	wrapper  *exec.CommandWrapper
	hostname string
}

// NewCLIProvider creates a provider using the gh CLI.
// Inherits authentication from gh CLI configuration.
//
// Example:
//
//	provider, err := cli.NewCLIProvider()
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewCLIProvider(opts ...Option) (*CLIProvider, error) {
	executor := exec.New(exec.WithInheritEnv())

	provider := &CLIProvider{
		wrapper: exec.NewWrapper(executor, "gh"),
	}

	for _, opt := range opts {
		if err := opt(provider); err != nil {
			return nil, err
		}
	}

	// Verify gh is installed and authenticated
	result, err := provider.wrapper.Run(provider.hostArgs("auth", "status")...)
	if err != nil {
		return nil, wrapAuthError(err, result)
	}

	return provider, nil
}

// WithExecutor runs gh through executor instead of the local process runner.
// This is primarily useful for testing with a fake executor.
func WithExecutor(executor exec.Executor) Option {
	return func(p *CLIProvider) error {
		if executor == nil {
			err := errors.New(errors.CodeInvalidInput, "executor cannot be nil")
			return errors.WithContext(err, "field", "executor")
		}
		p.wrapper = exec.NewWrapper(executor, "gh")
		return nil
	}
}

// WithHostname targets a GitHub Enterprise Server host known to gh.
func WithHostname(hostname string) Option {
	return func(p *CLIProvider) error {
		p.hostname = hostname
		return nil
	}
}

// GetPage requests a single page of issues with `gh api --include` and
// parses the status line and headers that precede the JSON body.
//
// params are sent as query fields of a GET request; they are ordered by key
// so that invocations are reproducible.
func (c *CLIProvider) GetPage(ctx context.Context, url string, params map[string]string, accept string) (*issues.IssuePage, error) {
	args := []string{"api", url, "--method", http.MethodGet, "--include"}
	if accept != "" {
		args = append(args, "--header", "Accept: "+accept)
	}
	for _, key := range slices.Sorted(maps.Keys(params)) {
		args = append(args, "--raw-field", key+"="+params[key])
	}

	result, err := c.run(ctx, args...)
	if err != nil {
		return nil, errors.WithContext(c.wrapCLIError(err, result, "failed to get issue page"), "url", url)
	}

	resp, err := parseResponse(result.Stdout)
	if err != nil {
		return nil, errors.WithContext(err, "url", url)
	}

	var items []*github.Issue
	if err := decode(resp.body, &items); err != nil {
		return nil, errors.WithContext(err, "url", url)
	}

	return &issues.IssuePage{
		Items: convert.Issues(items),
		Info:  convert.PageInfo(resp.header),
	}, nil
}

// GetIssue runs gh api for a single issue.
func (c *CLIProvider) GetIssue(ctx context.Context, owner, repo string, number int) (*issues.Issue, error) {
	result, err := c.run(ctx, "api", issuePath(owner, repo, number))
	if err != nil {
		return nil, c.wrapCLIError(err, result, "failed to get issue")
	}

	return parseIssue(result)
}

// CreateIssue posts the issue with gh api, one field flag per set value.
func (c *CLIProvider) CreateIssue(ctx context.Context, owner, repo string, issue issues.NewIssue) (*issues.Issue, error) {
	args := []string{"api", fmt.Sprintf("repos/%s/%s/issues", owner, repo), "--method", http.MethodPost,
		"--raw-field", "title=" + issue.Title}

	if issue.Body != "" {
		args = append(args, "--raw-field", "body="+issue.Body)
	}
	args = appendArrayField(args, "labels", issue.Labels, false)
	args = appendArrayField(args, "assignees", issue.Assignees, false)
	if issue.Milestone != nil {
		args = append(args, "--field", "milestone="+strconv.Itoa(*issue.Milestone))
	}

	result, err := c.run(ctx, args...)
	if err != nil {
		return nil, c.wrapCLIError(err, result, "failed to create issue")
	}

	return parseIssue(result)
}

// UpdateIssue patches the issue with gh api. Only fields set in update are
// sent.
// Only non-nil fields in update are sent.
func (c *CLIProvider) UpdateIssue(ctx context.Context, owner, repo string, number int, update issues.IssueUpdate) (*issues.Issue, error) {
	args := []string{"api", issuePath(owner, repo, number), "--method", http.MethodPatch}

	if update.Title != nil {
		args = append(args, "--raw-field", "title="+*update.Title)
	}
	if update.Body != nil {
		args = append(args, "--raw-field", "body="+*update.Body)
	}
	if update.State != nil {
		args = append(args, "--raw-field", "state="+string(*update.State))
	}
	if update.Milestone != nil {
		args = append(args, "--field", "milestone="+strconv.Itoa(*update.Milestone))
	}
	args = appendArrayField(args, "labels", update.Labels, update.Labels != nil)
	args = appendArrayField(args, "assignees", update.Assignees, update.Assignees != nil)

	result, err := c.run(ctx, args...)
	if err != nil {
		return nil, c.wrapCLIError(err, result, "failed to update issue")
	}

	return parseIssue(result)
}

func (c *CLIProvider) run(ctx context.Context, args ...string) (*exec.Result, error) {
	return c.wrapper.Clone().WithContext(ctx).Run(c.hostArgs(args...)...)
}

// hostArgs appends the --hostname flag when a host is configured.
func (c *CLIProvider) hostArgs(args ...string) []string {
	if c.hostname == "" {
		return args
	}
	return append(args, "--hostname", c.hostname)
}

// getErrorCodeFromResult classifies a failed gh run by exit code, then stderr.
func (c *CLIProvider) getErrorCodeFromResult(result *exec.Result) errors.ErrorCode {
	switch result.ExitCode {
	case 2:
		return errors.CodeUnauthorized
	case 4:
		return errors.CodeNotFound
	case 1:
		stderr := strings.ToLower(result.Stderr)
		if strings.Contains(stderr, "not found") || strings.Contains(stderr, "could not resolve") {
			return errors.CodeNotFound
		}
		if strings.Contains(stderr, "authentication") || strings.Contains(stderr, "unauthorized") {
			return errors.CodeUnauthorized
		}
		if strings.Contains(stderr, "rate limit") {
			return errors.CodeRateLimit
		}
		if strings.Contains(stderr, "forbidden") || strings.Contains(stderr, "permission denied") {
			return errors.CodeForbidden
		}
	}
	return errors.CodeExecutionFailed
}

// wrapCLIError classifies a failed gh run.
// When the output carries an HTTP status line (--include), the status
// decides the code.
func (c *CLIProvider) wrapCLIError(err error, result *exec.Result, message string) error {
	if err == nil {
		return nil
	}

	if result != nil {
		if resp, perr := parseResponse(result.Stdout); perr == nil && resp.status >= http.StatusBadRequest {
			return issues.WrapHTTPError(err, resp.status, message)
		}
	}

	code := errors.CodeExecutionFailed
	if result != nil {
		code = c.getErrorCodeFromResult(result)
	}

	wrappedErr := errors.Wrap(err, code, message)

	if result != nil && result.Stderr != "" {
		wrappedErr = errors.WithContext(wrappedErr, "stderr", result.Stderr)
		wrappedErr = errors.WithContext(wrappedErr, "exit_code", result.ExitCode)
	}

	return wrappedErr
}

// wrapAuthError reports a failed `gh auth status`.
func wrapAuthError(err error, result *exec.Result) error {
	authErr := errors.Wrap(err, errors.CodeUnauthorized, "gh CLI not authenticated")
	authErr = errors.WithContext(authErr, "hint", "Run 'gh auth login' to authenticate")
	if result != nil && result.Stderr != "" {
		authErr = errors.WithContext(authErr, "stderr", result.Stderr)
	}
	return authErr
}

// response is the output of `gh api --include`.
type response struct {
	status int
	header http.Header
	body   []byte
}

// parseResponse splits `gh api --include` output into status, headers and body.
func parseResponse(out string) (*response, error) {
	reader := textproto.NewReader(bufio.NewReader(strings.NewReader(out)))

	line, err := reader.ReadLine()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "missing HTTP status line in gh output")
	}

	// HTTP/2.0 200 OK
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		err := errors.New(errors.CodeInvalidInput, "malformed HTTP status line in gh output")
		return nil, errors.WithContext(err, "line", line)
	}
	status, err := strconv.Atoi(fields[1])
	if err != nil {
		err := errors.Wrap(err, errors.CodeInvalidInput, "malformed HTTP status code in gh output")
		return nil, errors.WithContext(err, "line", line)
	}

	header, err := reader.ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "malformed HTTP headers in gh output")
	}

	body, err := io.ReadAll(reader.R)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to read gh output")
	}

	return &response{status: status, header: http.Header(header), body: body}, nil
}

// parseIssue decodes a single issue from gh CLI JSON output.
func parseIssue(result *exec.Result) (*issues.Issue, error) {
	var issue github.Issue
	if err := decode([]byte(result.Stdout), &issue); err != nil {
		return nil, err
	}

	return convert.Issue(&issue), nil
}

// decode unmarshals a JSON payload into the target.
func decode(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err != nil {
		wrappedErr := errors.Wrap(err, errors.CodeInvalidInput, "failed to parse JSON response")
		wrappedErr = errors.WithContext(wrappedErr, "stdout", string(data))
		return wrappedErr
	}
	return nil
}

func issuePath(owner, repo string, number int) string {
	return fmt.Sprintf("repos/%s/%s/issues/%d", owner, repo, number)
}

// appendArrayField adds values as `key[]=value` fields. With sendEmpty set, an
// empty list is sent as `key[]` so that the API receives an empty array.
func appendArrayField(args []string, key string, values []string, sendEmpty bool) []string {
	if len(values) == 0 {
		if sendEmpty {
			args = append(args, "--raw-field", key+"[]")
		}
		return args
	}
	for _, value := range values {
		args = append(args, "--raw-field", key+"[]="+value)
	}
	return args
}
