package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/fastygo/taskie/internal/commands"
	"github.com/fastygo/taskie/internal/config"
	"github.com/fastygo/taskie/internal/connectivity"
	"github.com/fastygo/taskie/internal/remote"
	"github.com/fastygo/taskie/internal/session"
)

// Network returns a probe that sees one wifi interface when connected and
// nothing otherwise.
func Network(connected bool) *connectivity.Probe {
	return connectivity.New(connectivity.SourceFunc(func() ([]connectivity.Interface, error) {
		if !connected {
			return nil, nil
		}
		return []connectivity.Interface{{Name: "wlan0", Up: true, AddrCount: 1}}, nil
	}), nil, nil)
}

// NewEnv builds a command environment backed by a fresh reference backend
// and a session store in a temp dir.
func NewEnv(t *testing.T, connected bool) *commands.Env {
	t.Helper()
	srv, _ := NewBackend(t)

	dir := t.TempDir()
	store, err := session.Open(filepath.Join(dir, config.SessionFile), "")
	if err != nil {
		t.Fatalf("open session store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	holder := &session.Holder{}
	client, err := remote.New(BaseURL, holder, remote.WithDialer(srv.Dial))
	if err != nil {
		t.Fatalf("remote.New: %v", err)
	}

	return &commands.Env{
		Config: &config.Config{
			API:     config.APIConfig{BaseURL: BaseURL},
			Session: config.SessionConfig{Dir: dir},
		},
		Service: client,
		Network: Network(connected),
		Session: holder,
		Store:   store,
		Logger:  zap.NewNop(),
	}
}
