// ghissues lists, reads, creates and updates GitHub issues from the command
// line. List output is streamed: issues are written as pages arrive and
// --limit stops paging as soon as enough issues have been written.
//
// Usage:
//
//	ghissues list   [--repo owner/name | --org org | --mine] [filters]
//	ghissues get    owner/name NUMBER
//	ghissues create owner/name --title T [--body B] [--label L]...
//	ghissues update owner/name NUMBER [--title T] [--body B] [--state open|closed]
//
// Configuration is read from --config (YAML), then GHISSUES_* and
// GITHUB_TOKEN environment variables, then flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := environment{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newProvider: newProvider,
	}

	if err := run(ctx, os.Args[1:], env); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps error codes to process exit statuses, following gh.
func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeInvalidConfig,
		issues.ErrCodeArgumentNull, issues.ErrCodeArgumentEmpty:
		return 2
	case errors.CodeUnauthorized:
		return 4
	default:
		return 1
	}
}
