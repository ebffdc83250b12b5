package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/fastygo/taskie/internal/exitcode"
	"github.com/fastygo/taskie/internal/output"
	"github.com/fastygo/taskie/internal/remote"
)

func init() {
	Register(&ProfileCmd{})
	Register(&StatusCmd{})
}

// ProfileCmd prints the user profile.
type ProfileCmd struct{}

func (c *ProfileCmd) Name() string       { return "profile" }
func (c *ProfileCmd) Aliases() []string  { return []string{"me"} }
func (c *ProfileCmd) Synopsis() string   { return "Show the user profile" }
func (c *ProfileCmd) Usage() string      { return "taskie profile" }
func (c *ProfileCmd) NeedsAuth() bool    { return true }
func (c *ProfileCmd) NeedsNetwork() bool { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProfileCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	res := remote.Go(ctx, env.Service.UserProfile).Await(ctx)
	if !res.OK() {
		return report(errOut, res.Err)
	}
	output.FormatProfile(out, res.Value)
	return exitcode.Success
}

// StatusCmd reports connectivity and session state without calling the backend.
type StatusCmd struct{}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return nil }
func (c *StatusCmd) Synopsis() string   { return "Show network and session state" }
func (c *StatusCmd) Usage() string      { return "taskie status" }
func (c *StatusCmd) NeedsAuth() bool    { return false }
func (c *StatusCmd) NeedsNetwork() bool { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	network := "offline"
	if env.Network.Check() {
		var names []string
		for _, t := range env.Network.Transports() {
			names = append(names, string(t))
		}
		network = fmt.Sprintf("connected (%s)", strings.Join(names, ", "))
	}

	account := "not logged in"
	if sess := env.Session.Session(); sess.Valid() {
		account = "logged in"
		if sess.Email != "" {
			account = "logged in as " + sess.Email
		}
	}

	fmt.Fprintf(out, "network:  %s\n", network)
	fmt.Fprintf(out, "backend:  %s\n", env.Config.API.BaseURL)
	fmt.Fprintf(out, "session:  %s\n", account)
	return exitcode.Success
}
