// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/taskie/internal/commands"
	"github.com/fastygo/taskie/internal/exitcode"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "tasks"

// Options are the flags common to every command.
type Options struct {
	ConfigDir string
	Quiet     bool
	Debug     bool
}

// EnvFactory builds the command environment for one invocation.
type EnvFactory func(ctx context.Context, opts Options) (*commands.Env, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  EnvFactory
}

func NewDispatcher(registry *commands.Registry, factory EnvFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses args and dispatches to the matching command. Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name := DefaultCommand
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	// Flags require a command.
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatch(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts Options
	fs.StringVar(&opts.ConfigDir, "config", "", "")
	fs.BoolVar(&opts.Quiet, "quiet", false, "")
	fs.BoolVar(&opts.Debug, "debug", false, "")
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	env, err := d.factory(ctx, opts)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	env.Quiet = opts.Quiet
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}

	if cmd.NeedsAuth() && env.Session.Token() == "" {
		fmt.Fprintln(errOut, "error: not logged in (run: taskie login)")
		return exitcode.AuthError
	}

	if !cmd.NeedsNetwork() {
		return cmd.Run(ctx, env, positional, out, errOut)
	}

	code := exitcode.Success
	if !env.Network.RunIfConnected(func() {
		code = cmd.Run(ctx, env, positional, out, errOut)
	}) {
		fmt.Fprintln(errOut, "error: no network connection")
		return exitcode.BackendError
	}
	return code
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "flag needs an argument: "):
		return msg
	case strings.HasPrefix(msg, "flag provided but not defined: "):
		return "unknown flag: " + strings.TrimPrefix(msg, "flag provided but not defined: ")
	default:
		return msg
	}
}
