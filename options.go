package issues

import "time"

// RequestOption configures an IssueRequest.
type RequestOption func(*IssueRequest)

// WithFilter sets which issues to return ("assigned", "created", "mentioned",
// "subscribed", "all").
func WithFilter(filter IssueFilter) RequestOption {
	return func(r *IssueRequest) {
		r.Filter = filter
	}
}

// WithState filters issues by state ("open", "closed", "all").
func WithState(state ItemState) RequestOption {
	return func(r *IssueRequest) {
		r.State = state
	}
}

// WithSort sets the sort property ("created", "updated", "comments").
func WithSort(sort IssueSort) RequestOption {
	return func(r *IssueRequest) {
		r.Sort = sort
	}
}

// WithDirection sets the sort direction ("asc", "desc").
func WithDirection(direction SortDirection) RequestOption {
	return func(r *IssueRequest) {
		r.Direction = direction
	}
}

// WithLabels filters issues by labels (all must match).
func WithLabels(labels ...string) RequestOption {
	return func(r *IssueRequest) {
		r.Labels = labels
	}
}

// WithSince only returns issues updated at or after the given time.
func WithSince(since time.Time) RequestOption {
	return func(r *IssueRequest) {
		r.Since = &since
	}
}
