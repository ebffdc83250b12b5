package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskie/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/register", handlers.Auth.Register)
	r.POST("/api/login", handlers.Auth.Login)

	// Protected routes
	r.GET("/api/user/profile", authMiddleware(handlers.Profile.GetProfile))

	r.GET("/api/note", authMiddleware(handlers.Task.GetNotes))
	r.POST("/api/note/add", authMiddleware(handlers.Task.AddNote))
	r.POST("/api/note/complete", authMiddleware(handlers.Task.CompleteNote))

	return r
}
