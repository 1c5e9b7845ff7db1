package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues"
	"github.com/jmgilman/go/issues/internal/config"
)

func runList(ctx context.Context, args []string, env environment) error {
	cmd := newCommand("list", "ghissues list [--repo owner/name | --org org | --mine | --all] [flags]", env)

	var (
		repo, org                               string
		mine, all                               bool
		filter, state, sort, direction, since   string
		labels                                  []string
		milestone, assignee, creator, mentioned string
		limit                                   int
	)
	fs := cmd.fs
	fs.StringVar(&repo, "repo", "", "list issues of one repository (owner/name)")
	fs.StringVar(&org, "org", "", "list issues across an organization")
	fs.BoolVar(&mine, "mine", false, "list issues across repositories you own or are a member of")
	fs.BoolVar(&all, "all", false, "list issues across every repository visible to you (default)")
	fs.StringVar(&filter, "filter", "", "assigned, created, mentioned, subscribed or all")
	fs.StringVar(&state, "state", "", "open, closed or all")
	fs.StringVar(&sort, "sort", "", "created, updated or comments")
	fs.StringVar(&direction, "direction", "", "asc or desc")
	fs.StringSliceVar(&labels, "label", nil, "only issues with every one of these labels")
	fs.StringVar(&since, "since", "", "only issues updated since an RFC 3339 time, a date or a duration such as 72h")
	fs.StringVar(&milestone, "milestone", "", "milestone number, * or none (with --repo)")
	fs.StringVar(&assignee, "assignee", "", "assignee login, * or none (with --repo)")
	fs.StringVar(&creator, "creator", "", "author login (with --repo)")
	fs.StringVar(&mentioned, "mentioned", "", "mentioned login (with --repo)")
	fs.IntVar(&limit, "limit", 0, "stop after this many issues (0 for no limit)")

	if done, err := cmd.parse(args); done || err != nil {
		return err
	}
	if _, err := cmd.args(0); err != nil {
		return err
	}

	scopes := 0
	for _, name := range []string{"repo", "org", "mine", "all"} {
		if fs.Changed(name) {
			scopes++
		}
	}
	if scopes > 1 {
		return errors.New(errors.CodeInvalidInput, "only one of --repo, --org, --mine and --all may be given")
	}
	if !fs.Changed("repo") {
		for _, name := range []string{"milestone", "assignee", "creator", "mentioned"} {
			if fs.Changed(name) {
				return errors.Newf(errors.CodeInvalidInput, "--%s requires --repo", name)
			}
		}
	}
	if limit < 0 {
		return errors.New(errors.CodeInvalidInput, "--limit must not be negative")
	}

	var owner, name string
	if fs.Changed("repo") {
		var err error
		if owner, name, err = parseRepository(repo); err != nil {
			return err
		}
	}

	request := issues.NewRepositoryIssueRequest()
	if fs.Changed("filter") {
		request.Filter = issues.IssueFilter(filter)
	}
	if fs.Changed("state") {
		request.State = issues.ItemState(state)
	}
	if fs.Changed("sort") {
		request.Sort = issues.IssueSort(sort)
	}
	if fs.Changed("direction") {
		request.Direction = issues.SortDirection(direction)
	}
	if len(labels) > 0 {
		request.Labels = labels
	}
	if fs.Changed("since") {
		t, err := parseSince(since, time.Now())
		if err != nil {
			return err
		}
		request.Since = &t
	}
	request.Milestone = milestone
	request.Assignee = assignee
	request.Creator = creator
	request.Mentioned = mentioned

	return cmd.execute(ctx, func(ctx context.Context, a *app) error {
		var (
			stream *issues.IssueStream
			err    error
		)
		switch {
		case fs.Changed("repo"):
			stream, err = a.client.GetForRepository(ctx, owner, name, request)
		case fs.Changed("org"):
			stream, err = a.client.GetAllForOrganization(ctx, org, &request.IssueRequest)
		case mine:
			stream, err = a.client.GetAllForOwnedAndMemberRepositories(ctx, &request.IssueRequest)
		default:
			stream, err = a.client.GetAllForCurrent(ctx, &request.IssueRequest)
		}
		if err != nil {
			return err
		}

		written := 0
		for issue, err := range stream.All() {
			if err != nil {
				return err
			}
			if err := a.out.Write(issue); err != nil {
				return err
			}
			written++
			if limit > 0 && written >= limit {
				break
			}
		}

		a.logger.Debug().Int("issues", written).Msg("list complete")
		return nil
	})
}

func runGet(ctx context.Context, args []string, env environment) error {
	cmd := newCommand("get", "ghissues get owner/name NUMBER [flags]", env)
	if done, err := cmd.parse(args); done || err != nil {
		return err
	}

	positional, err := cmd.args(2)
	if err != nil {
		return err
	}
	owner, repo, err := parseRepository(positional[0])
	if err != nil {
		return err
	}
	number, err := parseNumber(positional[1])
	if err != nil {
		return err
	}

	return cmd.execute(ctx, func(ctx context.Context, a *app) error {
		issue, err := a.client.Get(ctx, owner, repo, number)
		if err != nil {
			return err
		}
		return a.out.Write(issue)
	})
}

func runCreate(ctx context.Context, args []string, env environment) error {
	cmd := newCommand("create", "ghissues create owner/name --title TITLE [flags]", env)

	var (
		newIssue  issues.NewIssue
		milestone int
	)
	fs := cmd.fs
	fs.StringVar(&newIssue.Title, "title", "", "issue title (required)")
	fs.StringVar(&newIssue.Body, "body", "", "issue body")
	fs.StringSliceVar(&newIssue.Labels, "label", nil, "labels to apply")
	fs.StringSliceVar(&newIssue.Assignees, "assignee", nil, "logins to assign")
	fs.IntVar(&milestone, "milestone", 0, "milestone number")

	if done, err := cmd.parse(args); done || err != nil {
		return err
	}

	positional, err := cmd.args(1)
	if err != nil {
		return err
	}
	owner, repo, err := parseRepository(positional[0])
	if err != nil {
		return err
	}
	if fs.Changed("milestone") {
		newIssue.Milestone = &milestone
	}

	return cmd.execute(ctx, func(ctx context.Context, a *app) error {
		issue, err := a.client.Create(ctx, owner, repo, &newIssue)
		if err != nil {
			return err
		}
		return a.out.Write(issue)
	})
}

func runUpdate(ctx context.Context, args []string, env environment) error {
	cmd := newCommand("update", "ghissues update owner/name NUMBER [flags]", env)

	var (
		title, body, state          string
		milestone                   int
		labels, assignees           []string
		clearLabels, clearAssignees bool
	)
	fs := cmd.fs
	fs.StringVar(&title, "title", "", "new title")
	fs.StringVar(&body, "body", "", "new body")
	fs.StringVar(&state, "state", "", "open or closed")
	fs.IntVar(&milestone, "milestone", 0, "milestone number")
	fs.StringSliceVar(&labels, "label", nil, "replace the labels")
	fs.BoolVar(&clearLabels, "clear-labels", false, "remove every label")
	fs.StringSliceVar(&assignees, "assignee", nil, "replace the assignees")
	fs.BoolVar(&clearAssignees, "clear-assignees", false, "remove every assignee")

	if done, err := cmd.parse(args); done || err != nil {
		return err
	}

	positional, err := cmd.args(2)
	if err != nil {
		return err
	}
	owner, repo, err := parseRepository(positional[0])
	if err != nil {
		return err
	}
	number, err := parseNumber(positional[1])
	if err != nil {
		return err
	}
	if fs.Changed("label") && clearLabels {
		return errors.New(errors.CodeInvalidInput, "--label and --clear-labels are mutually exclusive")
	}
	if fs.Changed("assignee") && clearAssignees {
		return errors.New(errors.CodeInvalidInput, "--assignee and --clear-assignees are mutually exclusive")
	}

	update := &issues.IssueUpdate{}
	changed := false
	if fs.Changed("title") {
		update.Title = &title
		changed = true
	}
	if fs.Changed("body") {
		update.Body = &body
		changed = true
	}
	if fs.Changed("state") {
		s := issues.ItemState(state)
		update.State = &s
		changed = true
	}
	if fs.Changed("milestone") {
		update.Milestone = &milestone
		changed = true
	}
	for _, label := range labels {
		update.AddLabel(label)
		changed = true
	}
	if clearLabels {
		update.ClearLabels()
		changed = true
	}
	for _, login := range assignees {
		update.AddAssignee(login)
		changed = true
	}
	if clearAssignees {
		update.ClearAssignees()
		changed = true
	}
	if !changed {
		return errors.New(errors.CodeInvalidInput, "nothing to update")
	}

	return cmd.execute(ctx, func(ctx context.Context, a *app) error {
		issue, err := a.client.Update(ctx, owner, repo, number, update)
		if err != nil {
			return err
		}
		return a.out.Write(issue)
	})
}

// runConfig prints the environment variables the configuration reads.
func runConfig(env environment) error {
	text, err := config.Usage()
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, text)
	return nil
}

func parseNumber(value string) (int, error) {
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidInput, "issue number must be an integer"),
			"number", value)
	}
	return number, nil
}

// parseSince accepts an RFC 3339 time, a date or a duration before now.
func parseSince(value string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return now.Add(-d), nil
	}
	return time.Time{}, errors.Newf(errors.CodeInvalidInput,
		"invalid --since %q: expected an RFC 3339 time, a date or a duration", value)
}
