// Package pagination turns a chain of linked API pages into a single lazy stream.
//
// A Paginator repeatedly invokes a FetchFunc, following the "next" relation of
// each page's link metadata until a page without one is reached. Query
// parameters and the Accept header are only sent with the first request; every
// following URL is taken verbatim from the previous page.
//
// Pages are requested strictly one at a time and page N+1 is never requested
// before every item of page N has been handed to the consumer. Stopping the
// consumer (breaking out of a range loop, or calling Stream.Close) therefore
// guarantees that no further requests are made.
//
// Example:
//
//	p := pagination.New(fetch, pagination.WithLogger(logger))
//	stream := pagination.NewStream(p.Items(ctx, "repos/owner/repo/issues", params, ""))
//	for issue, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(issue.Number)
//	}
package pagination
