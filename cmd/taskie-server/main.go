package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskie/internal/app"
	"github.com/fastygo/taskie/internal/config"
	pgInfra "github.com/fastygo/taskie/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/taskie/internal/infrastructure/redis"
	"github.com/fastygo/taskie/internal/services/lifecycle"
	"github.com/fastygo/taskie/pkg/logger"
	authUC "github.com/fastygo/taskie/usecase/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.SignalContext(context.Background())
	defer stop()

	var pool *pgxpool.Pool
	if cfg.Database.URL != "" {
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
		pool, err = pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pgInfra.Close(pool, zapLogger)
			return nil
		})
	}

	var redisClient *redislib.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redisInfra.NewClient(appCtx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	srv := app.NewServer(app.ServerOptions{
		Postgres: pool,
		Redis:    redisClient,
		Auth: authUC.Config{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    cfg.Session.TTL,
		},
		RequestTimeout: cfg.Context.RequestTimeout,
		PurgeInterval:  cfg.Session.PurgeInterval,
		Logger:         zapLogger,
	})

	srv.Monitor.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		srv.Monitor.Stop()
		return nil
	})

	if srv.Janitor != nil {
		srv.Janitor.Start()
		manager.Register("session_janitor", func(ctx context.Context) error {
			srv.Janitor.Stop(ctx)
			return nil
		})
	}

	server := &fasthttp.Server{
		Handler:      srv.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()
	zapLogger.Info("shutdown signal received")

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
