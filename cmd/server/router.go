package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Forwarded client addresses are only honoured behind a trusted proxy.
	if app.config.Server.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(apiMiddleware.RequestID)
	r.Use(apiMiddleware.Logging(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{
			apiMiddleware.RequestIDHeader,
			apiMiddleware.ProcessTimeHeader,
			apiMiddleware.RateLimitLimitHeader,
			apiMiddleware.RateLimitRemainingHeader,
			apiMiddleware.RateLimitResetHeader,
			"Retry-After",
		},
		MaxAge: 300,
	}))
	if app.config.RateLimit.Enabled {
		r.Use(apiMiddleware.RateLimit(app.limiter))
	}

	// Registered before any sub-router so mounted routes inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, shared.NotFound("Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, shared.MethodNotAllowed("Method not allowed"))
	})

	healthHandler := api.NewHealthHandler(Version, app.redisCounter)
	jobHandler := api.NewJobHandler(app.jobRunner, app.config.Jobs.SimulatedWork, app.logger)
	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/detailed", healthHandler.Detailed)
	r.Post("/async/background-task", jobHandler.TriggerBackgroundTask)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks", taskHandler.ListTasks)
			r.With(authMiddleware.RequireAdmin).Get("/tasks/admin/all", taskHandler.ListAllTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Patch("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	})

	return r
}
