package sdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues"
	"github.com/jmgilman/go/issues/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestProvider returns a provider whose client talks to a test server.
func newTestProvider(t *testing.T, mux *http.ServeMux) (*SDKProvider, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })

	client := github.NewClient(nil)
	baseURL, err := client.BaseURL.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	provider, err := NewSDKProvider(WithClient(client))
	require.NoError(t, err)

	return provider, server
}

func issuesJSON(numbers ...int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf(`{"number": %d, "title": "issue %d", "state": "open", "user": {"login": "octocat"}}`, n, n)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestNewSDKProvider(t *testing.T) {
	t.Parallel()

	t.Run("with token", func(t *testing.T) {
		t.Parallel()

		provider, err := NewSDKProvider(WithToken("test-token"))

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("with enterprise base URL", func(t *testing.T) {
		t.Parallel()

		provider, err := NewSDKProvider(WithToken("test-token"), WithBaseURL("https://ghe.example.com/"))

		require.NoError(t, err)
		assert.Equal(t, "https://ghe.example.com/api/v3/", provider.client.BaseURL.String())
	})

	tests := []struct {
		name      string
		setupOpts []Option
		wantCode  errors.ErrorCode
	}{
		{
			name:      "with empty token returns error",
			setupOpts: []Option{WithToken("")},
			wantCode:  errors.CodeInvalidInput,
		},
		{
			name:      "with nil client returns error",
			setupOpts: []Option{WithClient(nil)},
			wantCode:  errors.CodeInvalidInput,
		},
		{
			name:      "without token or client returns error",
			setupOpts: []Option{},
			wantCode:  errors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewSDKProvider(tt.setupOpts...)

			require.Error(t, err)

			var platformErr errors.PlatformError
			require.True(t, errors.As(err, &platformErr))
			assert.Equal(t, tt.wantCode, platformErr.Code())
		})
	}
}

func TestSDKProvider_GetPage(t *testing.T) {
	t.Parallel()

	t.Run("first page carries params, accept and metadata", func(t *testing.T) {
		t.Parallel()

		var gotQuery map[string]string
		var gotAccept string
		mux := http.NewServeMux()
		provider, server := newTestProvider(t, mux)

		mux.HandleFunc("/repos/fake/repo/issues", func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{}
			for key := range r.URL.Query() {
				gotQuery[key] = r.URL.Query().Get(key)
			}
			gotAccept = r.Header.Get("Accept")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Link", fmt.Sprintf(`<%s/page/2>; rel="next", <%s/page/3>; rel="last"`, server.URL, server.URL))
			w.Header().Set("ETag", `W/"abc123"`)
			w.Header().Set("X-OAuth-Scopes", "repo, read:org")
			w.Header().Set("X-Accepted-OAuth-Scopes", "repo")
			w.Header().Set("X-RateLimit-Limit", "5000")
			w.Header().Set("X-RateLimit-Remaining", "4999")
			w.Header().Set("X-RateLimit-Reset", "1700000000")
			_, _ = w.Write([]byte(issuesJSON(1, 2, 3)))
		})

		params := map[string]string{"state": "open", "sort": "created"}
		page, err := provider.GetPage(context.Background(), "repos/fake/repo/issues", params, "application/vnd.github.full+json")

		require.NoError(t, err)
		assert.Equal(t, params, gotQuery)
		assert.Equal(t, "application/vnd.github.full+json", gotAccept)

		require.Len(t, page.Items, 3)
		assert.Equal(t, 1, page.Items[0].Number)
		assert.Equal(t, "octocat", page.Items[0].Author)

		next, ok := page.NextLink()
		require.True(t, ok)
		assert.Equal(t, server.URL+"/page/2", next)
		assert.Equal(t, server.URL+"/page/3", page.Info.Links[pagination.RelLast])
		assert.Equal(t, `W/"abc123"`, page.Info.ETag)
		assert.Equal(t, []string{"repo", "read:org"}, page.Info.OAuthScopes)
		assert.Equal(t, []string{"repo"}, page.Info.AcceptedOAuthScopes)
		assert.Equal(t, 5000, page.Info.RateLimit.Limit)
		assert.Equal(t, 4999, page.Info.RateLimit.Remaining)
		assert.Equal(t, int64(1700000000), page.Info.RateLimit.Reset.Unix())
	})

	t.Run("next link is followed verbatim", func(t *testing.T) {
		t.Parallel()

		var gotRawQuery string
		mux := http.NewServeMux()
		provider, server := newTestProvider(t, mux)

		mux.HandleFunc("/page/2", func(w http.ResponseWriter, r *http.Request) {
			gotRawQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(issuesJSON(7)))
		})

		page, err := provider.GetPage(context.Background(), server.URL+"/page/2?page=2&per_page=3", nil, "")

		require.NoError(t, err)
		assert.Equal(t, "page=2&per_page=3", gotRawQuery)
		require.Len(t, page.Items, 1)
		_, ok := page.NextLink()
		assert.False(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		provider, _ := newTestProvider(t, mux)

		mux.HandleFunc("/orgs/missing/issues", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		})

		_, err := provider.GetPage(context.Background(), "orgs/missing/issues", nil, "")

		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestSDKProvider_Stream(t *testing.T) {
	t.Parallel()

	var requests []string
	mux := http.NewServeMux()
	provider, server := newTestProvider(t, mux)

	mux.HandleFunc("/issues", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Link", fmt.Sprintf(`<%s/resource?page=2>; rel="next"`, server.URL))
		_, _ = w.Write([]byte(issuesJSON(1, 2, 3)))
	})
	mux.HandleFunc("/resource", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/resource?page=3>; rel="next"`, server.URL))
			_, _ = w.Write([]byte(issuesJSON(4, 5, 6)))
			return
		}
		_, _ = w.Write([]byte(issuesJSON(7)))
	})

	client, err := issues.NewClient(provider)
	require.NoError(t, err)

	stream, err := client.GetAllForCurrent(context.Background(), nil)
	require.NoError(t, err)
	got, err := pagination.Collect(stream)
	require.NoError(t, err)

	numbers := make([]int, len(got))
	for i, issue := range got {
		numbers[i] = issue.Number
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, numbers)
	assert.Equal(t, []string{
		"/issues?direction=desc&filter=assigned&sort=created&state=open",
		"/resource?page=2",
		"/resource?page=3",
	}, requests)
}

func TestSDKProvider_GetIssue(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	provider, _ := newTestProvider(t, mux)

	mux.HandleFunc("/repos/fake/repo/issues/42", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"number": 42,
			"title": "Crash on start",
			"body": "Steps to reproduce",
			"state": "closed",
			"comments": 4,
			"locked": true,
			"user": {"login": "octocat"},
			"labels": [{"name": "bug"}],
			"assignees": [{"login": "hubot"}],
			"milestone": {"title": "v1.0"},
			"html_url": "https://github.com/fake/repo/issues/42",
			"created_at": "2024-01-01T00:00:00Z",
			"updated_at": "2024-01-02T00:00:00Z",
			"closed_at": "2024-01-03T00:00:00Z"
		}`))
	})

	issue, err := provider.GetIssue(context.Background(), "fake", "repo", 42)

	require.NoError(t, err)
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, "Crash on start", issue.Title)
	assert.True(t, issue.IsClosed())
	assert.Equal(t, 4, issue.Comments)
	assert.True(t, issue.Locked)
	assert.Equal(t, []string{"bug"}, issue.Labels)
	assert.Equal(t, []string{"hubot"}, issue.Assignees)
	assert.Equal(t, "v1.0", issue.Milestone)
	require.NotNil(t, issue.ClosedAt)
	assert.Equal(t, 3, issue.ClosedAt.Day())
}

func TestSDKProvider_CreateIssue(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	provider, _ := newTestProvider(t, mux)

	var body string
	mux.HandleFunc("/repos/fake/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body = readAll(r)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 7, "title": "New bug", "state": "open"}`))
	})

	milestone := 2
	issue, err := provider.CreateIssue(context.Background(), "fake", "repo", issues.NewIssue{
		Title:     "New bug",
		Labels:    []string{"bug"},
		Milestone: &milestone,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, issue.Number)
	assert.JSONEq(t, `{"title": "New bug", "labels": ["bug"], "milestone": 2}`, body)
}

func TestSDKProvider_UpdateIssue(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	provider, _ := newTestProvider(t, mux)

	var body string
	mux.HandleFunc("/repos/fake/repo/issues/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		body = readAll(r)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"number": 7, "state": "closed"}`))
	})

	state := issues.StateClosed
	update := issues.IssueUpdate{State: &state}
	update.ClearLabels()
	issue, err := provider.UpdateIssue(context.Background(), "fake", "repo", 7, update)

	require.NoError(t, err)
	assert.True(t, issue.IsClosed())
	assert.JSONEq(t, `{"state": "closed", "labels": []}`, body)
}

func TestSDKProvider_WrapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		wantCode errors.ErrorCode
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantCode: errors.CodeUnauthorized},
		{name: "validation failed", status: http.StatusUnprocessableEntity, wantCode: errors.CodeInvalidInput},
		{name: "server error", status: http.StatusBadGateway, wantCode: errors.CodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			provider, _ := newTestProvider(t, mux)

			mux.HandleFunc("/repos/fake/repo/issues/1", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message": "failed"}`))
			})

			_, err := provider.GetIssue(context.Background(), "fake", "repo", 1)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func readAll(r *http.Request) string {
	b, _ := io.ReadAll(r.Body)
	return string(b)
}
