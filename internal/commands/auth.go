package commands

import (
	"context"
	"flag"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/exitcode"
	"github.com/fastygo/taskie/internal/remote"
)

func init() {
	Register(&RegisterCmd{})
	Register(&LoginCmd{})
	Register(&LogoutCmd{})
}

// credentialFlags are shared by register and login.
type credentialFlags struct {
	name     string
	email    string
	password string
}

func (f *credentialFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "")
	fs.StringVar(&f.email, "email", "", "")
	fs.StringVar(&f.email, "e", "", "")
	fs.StringVar(&f.password, "password", "", "")
	fs.StringVar(&f.password, "p", "", "")
}

func (f *credentialFlags) credentials() domain.Credentials {
	return domain.Credentials{
		Name:     strings.TrimSpace(f.name),
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
	}
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	creds credentialFlags
}

func (c *RegisterCmd) Name() string       { return "register" }
func (c *RegisterCmd) Aliases() []string  { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string   { return "Create an account" }
func (c *RegisterCmd) Usage() string      { return "taskie register --name <name> --email <email> --password <password>" }
func (c *RegisterCmd) NeedsAuth() bool    { return false }
func (c *RegisterCmd) NeedsNetwork() bool { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) { c.creds.register(fs) }

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	creds := c.creds.credentials()
	if err := creds.Validate(); err != nil {
		return report(errOut, err)
	}

	res := remote.Go(ctx, func(ctx context.Context) (string, error) {
		return env.Service.Register(ctx, creds)
	}).Await(ctx)
	if !res.OK() {
		return report(errOut, res.Err)
	}

	env.say(out, "%s", res.Value)
	return exitcode.Success
}

// LoginCmd implements the login command.
type LoginCmd struct {
	creds credentialFlags
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Log in and remember the session" }
func (c *LoginCmd) Usage() string      { return "taskie login --email <email> --password <password>" }
func (c *LoginCmd) NeedsAuth() bool    { return false }
func (c *LoginCmd) NeedsNetwork() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) { c.creds.register(fs) }

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	creds := c.creds.credentials()
	if err := creds.Validate(); err != nil {
		return report(errOut, err)
	}

	res := remote.Go(ctx, func(ctx context.Context) (string, error) {
		return env.Service.Login(ctx, creds)
	}).Await(ctx)
	if !res.OK() {
		return report(errOut, res.Err)
	}

	sess := domain.Session{Token: res.Value, Email: creds.Email, CreatedAt: time.Now().UTC()}
	env.Session.Set(sess)
	if env.Store != nil {
		if err := env.Store.Save(sess); err != nil {
			env.Logger.Warn("session not persisted", zap.Error(err))
		}
	}

	env.say(out, "logged in as %s", creds.Email)
	return exitcode.Success
}

// LogoutCmd implements the logout command. It only forgets the local session.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Forget the stored session" }
func (c *LogoutCmd) Usage() string      { return "taskie logout" }
func (c *LogoutCmd) NeedsAuth() bool    { return false }
func (c *LogoutCmd) NeedsNetwork() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if env.Session.Token() == "" {
		env.say(out, "not logged in")
		return exitcode.Success
	}

	env.Session.Clear()
	if env.Store != nil {
		if err := env.Store.Delete(); err != nil {
			return report(errOut, domain.WrapError(domain.ErrCodeInternal, "remove stored session", err))
		}
	}

	env.say(out, "logged out")
	return exitcode.Success
}
