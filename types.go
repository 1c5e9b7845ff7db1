package issues

import (
	"time"

	"github.com/jmgilman/go/issues/pagination"
)

// Issue contains issue information from the provider.
type Issue struct {
	// Identification
	Number int `json:"number" yaml:"number"`

	// Content
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`

	// State and metadata
	State       string   `json:"state" yaml:"state"`
	Author      string   `json:"author" yaml:"author"`
	Labels      []string `json:"labels" yaml:"labels"`
	Assignees   []string `json:"assignees" yaml:"assignees"`
	Milestone   string   `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Comments    int      `json:"comments" yaml:"comments"`
	Locked      bool     `json:"locked" yaml:"locked"`
	PullRequest bool     `json:"pull_request" yaml:"pull_request"`

	// URLs
	URL     string `json:"url" yaml:"url"`
	HTMLURL string `json:"html_url" yaml:"html_url"`

	// Timestamps
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
}

// IsOpen returns true if the issue is open.
func (i *Issue) IsOpen() bool {
	return i.State == string(StateOpen)
}

// IsClosed returns true if the issue is closed.
func (i *Issue) IsClosed() bool {
	return i.State == string(StateClosed)
}

// IssuePage is a single page of issues returned by a Connection.
type IssuePage = pagination.Page[*Issue]

// IssueStream is a lazy, cancellable sequence of issues spanning every page
// of a list request.
type IssueStream = pagination.Stream[*Issue]

// NewIssue describes an issue to create.
type NewIssue struct {
	// Title is the issue title (required)
	Title string `json:"title" validate:"required"`

	// Body is the issue description
	Body string `json:"body,omitempty"`

	// Assignees is the list of logins to assign
	Assignees []string `json:"assignees,omitempty"`

	// Milestone is the number of the milestone to associate the issue with
	Milestone *int `json:"milestone,omitempty" validate:"omitempty,gt=0"`

	// Labels is the list of labels to apply
	Labels []string `json:"labels,omitempty"`
}

// IssueUpdate describes changes to an existing issue.
// Only non-nil fields are sent.
type IssueUpdate struct {
	Title     *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Body      *string    `json:"body,omitempty"`
	State     *ItemState `json:"state,omitempty" validate:"omitempty,oneof=open closed"`
	Milestone *int       `json:"milestone,omitempty" validate:"omitempty,gt=0"`

	// Labels replaces the issue's labels. A nil slice leaves them untouched,
	// an empty slice removes all of them.
	Labels []string `json:"labels,omitempty"`

	// Assignees replaces the issue's assignees, following the same nil/empty
	// rule as Labels.
	Assignees []string `json:"assignees,omitempty"`
}

// AddLabel adds a label to the update.
func (u *IssueUpdate) AddLabel(name string) {
	u.Labels = append(u.Labels, name)
}

// ClearLabels marks every label for removal.
func (u *IssueUpdate) ClearLabels() {
	u.Labels = []string{}
}

// AddAssignee adds an assignee to the update.
func (u *IssueUpdate) AddAssignee(login string) {
	u.Assignees = append(u.Assignees, login)
}

// ClearAssignees marks every assignee for removal.
func (u *IssueUpdate) ClearAssignees() {
	u.Assignees = []string{}
}

// ItemState is the state of an issue, or a state filter.
type ItemState string

// State constants for issues.
const (
	// StateOpen indicates an issue is open.
	StateOpen ItemState = "open"

	// StateClosed indicates an issue is closed.
	StateClosed ItemState = "closed"

	// StateAll is used for filtering to include all states.
	StateAll ItemState = "all"
)

// IssueFilter selects which issues are returned for the authenticated user.
type IssueFilter string

// Issue filters.
const (
	FilterAssigned   IssueFilter = "assigned"
	FilterCreated    IssueFilter = "created"
	FilterMentioned  IssueFilter = "mentioned"
	FilterSubscribed IssueFilter = "subscribed"
	FilterAll        IssueFilter = "all"
)

// IssueSort is the property issues are sorted by.
type IssueSort string

// Sort properties.
const (
	SortCreated  IssueSort = "created"
	SortUpdated  IssueSort = "updated"
	SortComments IssueSort = "comments"
)

// SortDirection is the sort order.
type SortDirection string

// Sort directions.
const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)
