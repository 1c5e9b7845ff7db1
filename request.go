package issues

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// First-page URLs, relative to the API root.
const (
	currentUserIssuesURL    = "issues"
	ownedAndMemberIssuesURL = "user/issues"
)

func repositoryIssuesURL(owner, repo string) string {
	return fmt.Sprintf("repos/%s/%s/issues", url.PathEscape(owner), url.PathEscape(repo))
}

func organizationIssuesURL(org string) string {
	return fmt.Sprintf("orgs/%s/issues", url.PathEscape(org))
}

// IssueRequest holds the filter, sort and direction options for listing issues.
//
// Only fields that are set are sent: a zero-value IssueRequest produces no
// query parameters at all. Use NewIssueRequest to start from the API defaults.
type IssueRequest struct {
	// Filter selects issues by their relation to the authenticated user.
	Filter IssueFilter `validate:"omitempty,oneof=assigned created mentioned subscribed all"`

	// State filters by issue state.
	State ItemState `validate:"omitempty,oneof=open closed all"`

	// Labels filters by labels (all must match).
	Labels []string

	// Sort is the property to sort by.
	Sort IssueSort `validate:"omitempty,oneof=created updated comments"`

	// Direction is the sort order.
	Direction SortDirection `validate:"omitempty,oneof=asc desc"`

	// Since only includes issues updated at or after this time.
	Since *time.Time
}

// NewIssueRequest returns a request populated with the API defaults (assigned,
// open, sorted by creation date, descending) and then applies opts.
func NewIssueRequest(opts ...RequestOption) *IssueRequest {
	r := &IssueRequest{
		Filter:    FilterAssigned,
		State:     StateOpen,
		Sort:      SortCreated,
		Direction: SortDescending,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ToParameters returns the query parameters for the request.
// Options that are not set never appear as keys.
func (r *IssueRequest) ToParameters() map[string]string {
	params := make(map[string]string)
	if r == nil {
		return params
	}

	setIfNotEmpty(params, "filter", string(r.Filter))
	setIfNotEmpty(params, "state", string(r.State))
	setIfNotEmpty(params, "sort", string(r.Sort))
	setIfNotEmpty(params, "direction", string(r.Direction))

	if len(r.Labels) > 0 {
		params["labels"] = strings.Join(r.Labels, ",")
	}
	if r.Since != nil {
		params["since"] = r.Since.UTC().Format(time.RFC3339)
	}

	return params
}

// Validate checks option values.
func (r *IssueRequest) Validate() error {
	return validateStruct("request", r)
}

// RepositoryIssueRequest extends IssueRequest with repository-only filters.
type RepositoryIssueRequest struct {
	IssueRequest

	// Milestone is a milestone number, "*" for any milestone or "none" for
	// issues without one.
	Milestone string `validate:"omitempty,milestone"`

	// Assignee is a login, "*" for any assignee or "none" for unassigned issues.
	Assignee string

	// Creator is the login of the issue author.
	Creator string

	// Mentioned is a login mentioned in the issue.
	Mentioned string
}

// NewRepositoryIssueRequest returns a repository request populated with the
// API defaults and then applies opts.
func NewRepositoryIssueRequest(opts ...RequestOption) *RepositoryIssueRequest {
	return &RepositoryIssueRequest{IssueRequest: *NewIssueRequest(opts...)}
}

// ToParameters returns the query parameters for the request.
func (r *RepositoryIssueRequest) ToParameters() map[string]string {
	if r == nil {
		return make(map[string]string)
	}

	params := r.IssueRequest.ToParameters()
	setIfNotEmpty(params, "milestone", r.Milestone)
	setIfNotEmpty(params, "assignee", r.Assignee)
	setIfNotEmpty(params, "creator", r.Creator)
	setIfNotEmpty(params, "mentioned", r.Mentioned)

	return params
}

// Validate checks option values.
func (r *RepositoryIssueRequest) Validate() error {
	return validateStruct("request", r)
}

func setIfNotEmpty(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}
