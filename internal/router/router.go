// Package router assembles the gin engine and route table.
package router

import (
	"github.com/gin-gonic/gin"

	"commandcenter/internal/events"
	"commandcenter/internal/handlers"
	"commandcenter/internal/middleware"
	"commandcenter/internal/services"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Auth     *services.AuthService
	Registry *services.RegistryService
	Executor *services.ExecutorService
	System   *services.SystemService
	Bus      *events.Bus
}

// New builds the HTTP surface: a thin adapter over the four component
// contracts.
func New(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	authHandler := handlers.NewAuthHandler(deps.Auth)
	commandHandler := handlers.NewCommandHandler(deps.Registry, deps.Executor)
	executionHandler := handlers.NewExecutionHandler(deps.Executor)
	eventHandler := handlers.NewEventHandler(deps.Auth, deps.Bus)
	systemHandler := handlers.NewSystemHandler(deps.System)

	api := r.Group("/api")
	{
		api.GET("/health", systemHandler.Health)
		api.POST("/auth/login", authHandler.Login)

		// The WebSocket feed authenticates through its token query parameter.
		api.GET("/events", eventHandler.Stream)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(deps.Auth))
		{
			protected.GET("/commands", commandHandler.List)
			protected.POST("/commands", commandHandler.Save)
			protected.DELETE("/commands/:id", commandHandler.Delete)
			protected.POST("/commands/:id/execute", commandHandler.Execute)

			protected.GET("/history", executionHandler.History)

			protected.POST("/auth/password", authHandler.SetPassword)
			protected.GET("/auth/sessions", authHandler.Sessions)

			protected.GET("/system", systemHandler.Snapshot)
		}
	}

	return r
}
