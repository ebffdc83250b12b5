package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fastygo/taskie/internal/cli"
	"github.com/fastygo/taskie/internal/commands"
	"github.com/fastygo/taskie/internal/exitcode"
	"github.com/fastygo/taskie/internal/testutil"
)

type harness struct {
	env  *commands.Env
	opts []cli.Options
	d    *cli.Dispatcher
}

func newHarness(t *testing.T, connected bool) *harness {
	t.Helper()
	h := &harness{env: testutil.NewEnv(t, connected)}
	h.d = cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, opts cli.Options) (*commands.Env, error) {
		h.opts = append(h.opts, opts)
		return h.env, nil
	})
	return h
}

func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer
	code = h.d.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestDefaultCommandNeedsLogin(t *testing.T) {
	h := newHarness(t, true)
	_, stderr, code := h.run()
	if code != exitcode.AuthError {
		t.Errorf("code = %d, want %d", code, exitcode.AuthError)
	}
	if stderr != "error: not logged in (run: taskie login)\n" {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestUnknownCommandAndFlags(t *testing.T) {
	h := newHarness(t, true)
	tests := []struct {
		args   []string
		stderr string
	}{
		{[]string{"frobnicate"}, "error: unknown command: frobnicate\n"},
		{[]string{"--quiet"}, "error: unknown command: --quiet\n"},
		{[]string{"version", "--bogus"}, "error: unknown flag: -bogus\n"},
		{[]string{"add", "--priority"}, "error: flag needs an argument: -priority\n"},
	}
	for _, tt := range tests {
		_, stderr, code := h.run(tt.args...)
		if code != exitcode.UserError {
			t.Errorf("%v: code = %d, want %d", tt.args, code, exitcode.UserError)
		}
		if stderr != tt.stderr {
			t.Errorf("%v: stderr = %q, want %q", tt.args, stderr, tt.stderr)
		}
	}
}

func TestOfflineBlocksNetworkCommands(t *testing.T) {
	h := newHarness(t, false)
	for _, args := range [][]string{
		{"register", "--email", "a@b.c", "--password", "pw"},
		{"login", "--email", "a@b.c", "--password", "pw"},
	} {
		stdout, stderr, code := h.run(args...)
		if code != exitcode.BackendError {
			t.Errorf("%v: code = %d, want %d", args, code, exitcode.BackendError)
		}
		if stderr != "error: no network connection\n" || stdout != "" {
			t.Errorf("%v: stdout %q stderr %q", args, stdout, stderr)
		}
	}

	if _, _, code := h.run("version"); code != exitcode.Success {
		t.Errorf("version offline: code = %d", code)
	}
	if _, _, code := h.run("status"); code != exitcode.Success {
		t.Errorf("status offline: code = %d", code)
	}
}

func TestFullSessionThroughDispatcher(t *testing.T) {
	h := newHarness(t, true)

	steps := [][]string{
		{"register", "--name", "Ann", "--email", "ann@example.com", "--password", "pw"},
		{"login", "--email", "ann@example.com", "--password", "pw"},
		{"add", "--quiet", "Buy milk"},
	}
	for _, args := range steps {
		if _, stderr, code := h.run(args...); code != exitcode.Success {
			t.Fatalf("%v: code %d stderr %q", args, code, stderr)
		}
	}

	stdout, stderr, code := h.run("ls")
	if code != exitcode.Success {
		t.Fatalf("ls: code %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "Buy milk") {
		t.Errorf("ls stdout = %q", stdout)
	}

	if _, _, code := h.run("--config"); code != exitcode.UserError {
		t.Errorf("flag as command: code = %d", code)
	}
}

func TestCommonFlagsReachFactory(t *testing.T) {
	h := newHarness(t, true)
	if _, _, code := h.run("version", "--config", "/tmp/taskie-test", "--debug", "--quiet"); code != exitcode.Success {
		t.Fatalf("code = %d", code)
	}
	if len(h.opts) != 1 {
		t.Fatalf("factory called %d times", len(h.opts))
	}
	want := cli.Options{ConfigDir: "/tmp/taskie-test", Quiet: true, Debug: true}
	if h.opts[0] != want {
		t.Errorf("options = %+v, want %+v", h.opts[0], want)
	}
	if !h.env.Quiet {
		t.Error("quiet not applied to env")
	}
}
