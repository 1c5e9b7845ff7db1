package convert

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/issues"
	"github.com/jmgilman/go/issues/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, Issue(nil))
	})

	t.Run("full payload", func(t *testing.T) {
		t.Parallel()

		var in github.Issue
		require.NoError(t, json.Unmarshal([]byte(`{
			"number": 5,
			"title": "Flaky test",
			"body": "Fails on CI",
			"state": "open",
			"comments": 2,
			"locked": false,
			"user": {"login": "octocat"},
			"labels": [{"name": "bug"}, {"name": "ci"}],
			"assignees": [{"login": "hubot"}],
			"milestone": {"title": "v2"},
			"pull_request": {"url": "https://api.github.com/repos/o/r/pulls/5"},
			"url": "https://api.github.com/repos/o/r/issues/5",
			"html_url": "https://github.com/o/r/issues/5",
			"created_at": "2024-05-01T10:00:00Z",
			"updated_at": "2024-05-02T10:00:00Z"
		}`), &in))

		got := Issue(&in)

		assert.Equal(t, &issues.Issue{
			Number:      5,
			Title:       "Flaky test",
			Body:        "Fails on CI",
			State:       "open",
			Author:      "octocat",
			Labels:      []string{"bug", "ci"},
			Assignees:   []string{"hubot"},
			Milestone:   "v2",
			Comments:    2,
			PullRequest: true,
			URL:         "https://api.github.com/repos/o/r/issues/5",
			HTMLURL:     "https://github.com/o/r/issues/5",
			CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
		}, got)
	})
}

func TestIssues(t *testing.T) {
	t.Parallel()

	got := Issues([]*github.Issue{{Number: github.Int(1)}, {Number: github.Int(2)}})

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 2, got[1].Number)
	assert.Empty(t, Issues(nil))
}

func TestIssueRequest(t *testing.T) {
	t.Parallel()

	milestone := 3
	req := IssueRequest(issues.NewIssue{Title: "t", Milestone: &milestone})

	assert.Equal(t, "t", req.GetTitle())
	assert.Nil(t, req.Body)
	assert.Nil(t, req.Labels)
	assert.Nil(t, req.Assignees)
	assert.Equal(t, 3, req.GetMilestone())
}

func TestUpdateRequest(t *testing.T) {
	t.Parallel()

	state := issues.StateOpen
	update := issues.IssueUpdate{State: &state}
	update.ClearAssignees()
	update.AddLabel("bug")

	req := UpdateRequest(update)

	assert.Equal(t, "open", req.GetState())
	assert.Nil(t, req.Title)
	require.NotNil(t, req.Labels)
	assert.Equal(t, []string{"bug"}, *req.Labels)
	require.NotNil(t, req.Assignees)
	assert.Empty(t, *req.Assignees)
}

func TestPageInfo(t *testing.T) {
	t.Parallel()

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()

		info := PageInfo(nil)
		_, ok := pagination.NextLink(info)
		assert.False(t, ok)
	})

	t.Run("full header", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set(HeaderLink, `<https://api.github.com/user/issues?page=2>; rel="next", <https://api.github.com/user/issues?page=9>; rel="last"`)
		header.Set(HeaderETag, `"etag"`)
		header.Set(HeaderOAuthScopes, "repo, user")
		header.Set(HeaderRateLimit, "60")
		header.Set(HeaderRateRemaining, "59")
		header.Set(HeaderRateReset, "1700000000")

		info := PageInfo(header)

		assert.Equal(t, map[string]string{
			pagination.RelNext: "https://api.github.com/user/issues?page=2",
			pagination.RelLast: "https://api.github.com/user/issues?page=9",
		}, info.Links)
		assert.Equal(t, `"etag"`, info.ETag)
		assert.Equal(t, []string{"repo", "user"}, info.OAuthScopes)
		assert.Nil(t, info.AcceptedOAuthScopes)
		assert.Equal(t, 60, info.RateLimit.Limit)
		assert.Equal(t, 59, info.RateLimit.Remaining)
		assert.Equal(t, time.Unix(1700000000, 0), info.RateLimit.Reset)
	})

	t.Run("multiple relations on one link", func(t *testing.T) {
		t.Parallel()

		header := http.Header{}
		header.Set(HeaderLink, `<https://api.github.com/issues?page=2>; rel="next last"`)

		info := PageInfo(header)

		assert.Equal(t, "https://api.github.com/issues?page=2", info.Links[pagination.RelNext])
		assert.Equal(t, "https://api.github.com/issues?page=2", info.Links[pagination.RelLast])
	})
}
