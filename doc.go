// Package issues provides a streaming client for the GitHub Issues REST API.
//
// List endpoints return every matching issue as a single lazy IssueStream.
// Pages are fetched one at a time, following the "next" relation of each
// page's Link header, and only when the consumer asks for an item beyond the
// ones already received. Query parameters and the Accept header are sent with
// the first request only.
//
// # Architecture
//
// The Client validates arguments and builds first-page requests. Every request
// is executed by a Provider:
//
//   - Connection fetches one page of issues
//   - IssueService fetches, creates and updates single issues
//
// Two providers are included: providers/sdk uses google/go-github and
// providers/cli shells out to the gh CLI. mocks.ProviderMock is a test double.
//
// # Errors
//
// Errors are PlatformError values from github.com/jmgilman/go/errors. Argument
// checks fail before any request with ErrCodeArgumentNull (nil reference) or
// ErrCodeArgumentEmpty (empty or whitespace string); invalid option values and
// non-positive issue numbers fail with errors.CodeInvalidInput. Provider
// errors are returned unchanged, including when they end a stream midway.
//
// # Usage
//
//	provider, err := sdk.NewSDKProvider(sdk.WithToken(os.Getenv("GITHUB_TOKEN")))
//	if err != nil {
//	    return err
//	}
//
//	client, err := issues.NewClient(provider)
//	if err != nil {
//	    return err
//	}
//
//	stream, err := client.GetForRepository(ctx, "octo", "hello",
//	    issues.NewRepositoryIssueRequest(issues.WithState(issues.StateAll)))
//	if err != nil {
//	    return err
//	}
//
//	for issue, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("#%d %s\n", issue.Number, issue.Title)
//	}
//
// Breaking out of the loop, or calling Close when using Next, stops paging.
package issues
