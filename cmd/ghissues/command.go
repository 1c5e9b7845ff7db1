package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const usage = `ghissues lists, reads, creates and updates GitHub issues.

Usage:
  ghissues <command> [flags] [arguments]

Commands:
  list      Stream issues for a repository, an organization or the current user
  get       Print a single issue
  create    Create an issue
  update    Update an issue
  config    Print the configuration environment variables
  version   Print the version

Run "ghissues <command> --help" for the flags of a command.
`

// command is a parsed subcommand sharing the common flags.
type command struct {
	name     string
	synopsis string
	env      environment
	fs       *pflag.FlagSet
	common   commonFlags
}

func newCommand(name, synopsis string, env environment) *command {
	c := &command{
		name:     name,
		synopsis: synopsis,
		env:      env,
		fs:       pflag.NewFlagSet("ghissues "+name, pflag.ContinueOnError),
	}
	c.fs.SetOutput(io.Discard)
	c.common.AddFlags(c.fs)
	return c
}

// parse parses args. It returns done when help was printed and the command
// should stop without error.
func (c *command) parse(args []string) (done bool, err error) {
	var help bool
	c.fs.BoolVarP(&help, "help", "h", false, "show help")

	if err := c.fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			c.printHelp(c.env.stdout)
			return true, nil
		}
		return false, errors.Wrap(err, errors.CodeInvalidInput, "invalid flags")
	}
	if help {
		c.printHelp(c.env.stdout)
		return true, nil
	}
	return false, nil
}

func (c *command) printHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage:\n  %s\n\nFlags:\n", c.synopsis)
	c.fs.SetOutput(w)
	c.fs.PrintDefaults()
	c.fs.SetOutput(io.Discard)
}

// args checks the number of positional arguments.
func (c *command) args(n int) ([]string, error) {
	if c.fs.NArg() != n {
		return nil, errors.Newf(errors.CodeInvalidInput, "%s expects %d argument(s), got %d (usage: %s)",
			c.name, n, c.fs.NArg(), c.synopsis)
	}
	return c.fs.Args(), nil
}

// execute wires the application and runs fn inside a command span bounded by
// the configured timeout. Output and metrics are flushed even when fn fails.
func (c *command) execute(ctx context.Context, fn func(context.Context, *app) error) error {
	a, err := setup(ctx, c.env, c.fs, &c.common)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	runCtx, span := a.tracer.Start(runCtx, "ghissues."+c.name,
		trace.WithAttributes(attribute.String("ghissues.provider", a.cfg.Provider)))

	err = fn(runCtx, a)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Debug().Err(err).Str("command", c.name).Msg("command failed")
	}
	span.End()
	cancel()

	if closeErr := a.close(context.WithoutCancel(ctx)); err == nil {
		err = closeErr
	}
	return err
}

// run dispatches args to a subcommand.
func run(ctx context.Context, args []string, env environment) error {
	if len(args) == 0 {
		fmt.Fprint(env.stderr, usage)
		return errors.New(errors.CodeInvalidInput, "missing command")
	}

	switch args[0] {
	case "list":
		return runList(ctx, args[1:], env)
	case "get":
		return runGet(ctx, args[1:], env)
	case "create":
		return runCreate(ctx, args[1:], env)
	case "update":
		return runUpdate(ctx, args[1:], env)
	case "config":
		return runConfig(env)
	case "version", "--version":
		fmt.Fprintln(env.stdout, version)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(env.stdout, usage)
		return nil
	default:
		fmt.Fprint(env.stderr, usage)
		return errors.Newf(errors.CodeInvalidInput, "unknown command %q", args[0])
	}
}
