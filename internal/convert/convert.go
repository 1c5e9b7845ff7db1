// Package convert maps go-github issue payloads onto the issues domain types.
// It is shared by the SDK and CLI providers, which both receive the REST API's
// JSON representation.
package convert

import (
	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/issues"
)

// Issue converts a go-github Issue to an issues.Issue.
func Issue(issue *github.Issue) *issues.Issue {
	if issue == nil {
		return nil
	}

	data := &issues.Issue{
		Number:      issue.GetNumber(),
		Title:       issue.GetTitle(),
		Body:        issue.GetBody(),
		State:       issue.GetState(),
		Comments:    issue.GetComments(),
		Locked:      issue.GetLocked(),
		PullRequest: issue.IsPullRequest(),
		URL:         issue.GetURL(),
		HTMLURL:     issue.GetHTMLURL(),
		CreatedAt:   issue.GetCreatedAt().Time,
		UpdatedAt:   issue.GetUpdatedAt().Time,
	}

	if user := issue.GetUser(); user != nil {
		data.Author = user.GetLogin()
	}

	data.Labels = make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		data.Labels = append(data.Labels, label.GetName())
	}

	data.Assignees = make([]string, 0, len(issue.Assignees))
	for _, assignee := range issue.Assignees {
		data.Assignees = append(data.Assignees, assignee.GetLogin())
	}

	if milestone := issue.GetMilestone(); milestone != nil {
		data.Milestone = milestone.GetTitle()
	}

	if closedAt := issue.GetClosedAt(); !closedAt.IsZero() {
		t := closedAt.Time
		data.ClosedAt = &t
	}

	return data
}

// Issues converts a page of go-github issues, preserving order.
func Issues(in []*github.Issue) []*issues.Issue {
	out := make([]*issues.Issue, 0, len(in))
	for _, issue := range in {
		out = append(out, Issue(issue))
	}
	return out
}

// IssueRequest builds the go-github create payload for a new issue.
// Empty label and assignee lists are omitted.
func IssueRequest(issue issues.NewIssue) *github.IssueRequest {
	req := &github.IssueRequest{
		Title: github.String(issue.Title),
	}
	if issue.Body != "" {
		req.Body = github.String(issue.Body)
	}
	if len(issue.Labels) > 0 {
		req.Labels = &issue.Labels
	}
	if len(issue.Assignees) > 0 {
		req.Assignees = &issue.Assignees
	}
	req.Milestone = issue.Milestone

	return req
}

// UpdateRequest builds the go-github edit payload. Only set fields are sent;
// an empty (non-nil) label or assignee list clears them.
func UpdateRequest(update issues.IssueUpdate) *github.IssueRequest {
	req := &github.IssueRequest{
		Title:     update.Title,
		Body:      update.Body,
		Milestone: update.Milestone,
	}
	if update.State != nil {
		req.State = github.String(string(*update.State))
	}
	if update.Labels != nil {
		req.Labels = &update.Labels
	}
	if update.Assignees != nil {
		req.Assignees = &update.Assignees
	}

	return req
}
