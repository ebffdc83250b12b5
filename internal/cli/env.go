package cli

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/internal/commands"
	"github.com/fastygo/taskie/internal/config"
	"github.com/fastygo/taskie/internal/connectivity"
	"github.com/fastygo/taskie/internal/remote"
	"github.com/fastygo/taskie/internal/service"
	"github.com/fastygo/taskie/internal/services/lifecycle"
	"github.com/fastygo/taskie/internal/session"
	"github.com/fastygo/taskie/pkg/logger"
)

var _ service.Service = (*remote.Client)(nil)

// NewEnvFactory returns the production factory: configuration from the
// environment, the session from the bbolt store, and the HTTP client.
// Resources are released through manager.
func NewEnvFactory(manager *lifecycle.Manager) EnvFactory {
	return func(ctx context.Context, opts Options) (*commands.Env, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if opts.ConfigDir != "" {
			cfg.Session.Dir = opts.ConfigDir
		}

		level := "warn"
		if opts.Debug {
			level = "debug"
		}
		log, err := logger.New(logger.Config{Level: level, Encoding: "console", Output: os.Stderr})
		if err != nil {
			return nil, err
		}
		manager.Register("logger", func(context.Context) error {
			_ = log.Sync()
			return nil
		})

		store, err := session.Open(cfg.SessionPath(), "")
		if err != nil {
			return nil, err
		}
		manager.Register("session_store", func(context.Context) error {
			return store.Close()
		})

		holder := &session.Holder{}
		sess, err := store.Load()
		switch {
		case err == nil:
			holder.Set(sess)
		case errors.Is(err, domain.ErrSessionNotFound):
		default:
			log.Warn("stored session unreadable", zap.Error(err))
		}

		client, err := remote.New(cfg.API.BaseURL, holder, remote.WithLogger(log))
		if err != nil {
			return nil, err
		}

		return &commands.Env{
			Config:  cfg,
			Service: client,
			Network: connectivity.New(nil, nil, log),
			Session: holder,
			Store:   store,
			Logger:  log,
		}, nil
	}
}
