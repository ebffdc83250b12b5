// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"go.uber.org/zap"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/config"
	"github.com/fastygo/taskie/internal/connectivity"
	"github.com/fastygo/taskie/internal/service"
	"github.com/fastygo/taskie/internal/session"
)

// SessionStore persists the session between runs.
type SessionStore interface {
	Save(sess domain.Session) error
	Delete() error
}

// Env carries everything a command may use. It is built once per invocation.
type Env struct {
	Config  *config.Config
	Service service.Service
	Network *connectivity.Probe
	Session *session.Holder
	Store   SessionStore
	Logger  *zap.Logger
	Quiet   bool
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	NeedsAuth() bool

	// NeedsNetwork returns true if the command talks to the backend and
	// must only run while the host is connected.
	NeedsNetwork() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional args left after flag
	// parsing and returns the exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
