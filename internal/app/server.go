package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskie/api/handler"
	"github.com/fastygo/taskie/internal/infrastructure/monitor"
	"github.com/fastygo/taskie/internal/middleware"
	"github.com/fastygo/taskie/internal/router"
	"github.com/fastygo/taskie/internal/services"
	"github.com/fastygo/taskie/pkg/httpcontext"
	"github.com/fastygo/taskie/repository"
	"github.com/fastygo/taskie/repository/memory"
	pgRepo "github.com/fastygo/taskie/repository/postgres"
	redisRepo "github.com/fastygo/taskie/repository/redis"
	authUC "github.com/fastygo/taskie/usecase/auth"
	profileUC "github.com/fastygo/taskie/usecase/profile"
	taskUC "github.com/fastygo/taskie/usecase/task"
)

// ServerOptions configures the reference backend.
type ServerOptions struct {
	// Postgres stores users and tasks when set; otherwise they live in memory.
	Postgres       *pgxpool.Pool
	// Redis stores sessions when set; otherwise they live in memory.
	Redis          *redislib.Client
	Auth           authUC.Config
	RequestTimeout time.Duration
	PurgeInterval  time.Duration
	MonitorEvery   time.Duration
	Logger         *zap.Logger
}

// Server is the assembled reference backend. Janitor is nil when sessions live in Redis.
type Server struct {
	Handler fasthttp.RequestHandler
	Auth    *authUC.UseCase
	Monitor *monitor.Monitor
	Janitor *services.Janitor
}

// NewServer wires repositories, use cases and handlers into one request handler.
func NewServer(opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		sessionRepo repository.SessionRepository
		counter     monitor.SessionCounter
		janitor     *services.Janitor
	)
	if opts.Redis != nil {
		redisSessions := redisRepo.NewSessionRepository(opts.Redis, opts.Auth.TTL)
		sessionRepo = redisSessions
		counter = redisSessions
	} else {
		mem := memory.NewSessionRepository(opts.Auth.TTL)
		sessionRepo = mem
		counter = mem
		janitor = services.NewJanitor(mem, opts.PurgeInterval, logger)
	}

	var (
		userRepo repository.UserRepository
		taskRepo repository.TaskRepository
	)
	if opts.Postgres != nil {
		userRepo = pgRepo.NewUserRepository(opts.Postgres)
		taskRepo = pgRepo.NewTaskRepository(opts.Postgres)
	} else {
		userRepo = memory.NewUserRepository()
		taskRepo = memory.NewTaskRepository()
	}

	authUseCase := authUC.New(userRepo, sessionRepo, opts.Auth, logger)
	profileUseCase := profileUC.New(userRepo, logger)
	taskUseCase := taskUC.New(taskRepo, logger)

	mon := monitor.New(opts.Redis, counter, opts.MonitorEvery, logger)
	ctxAdapter := httpcontext.NewAdapter(opts.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, logger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, logger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, logger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, logger),
	}
	r := router.New(handlers, middleware.TokenAuth(authUseCase, logger))

	return &Server{
		Handler: r.Handler,
		Auth:    authUseCase,
		Monitor: mon,
		Janitor: janitor,
	}
}
