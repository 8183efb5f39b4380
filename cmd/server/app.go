package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/job"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/ratelimit"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Stores
	userStore store.UserStore
	taskStore store.TaskStore

	// Services
	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService

	// Event system and background work
	eventEmitter *events.InMemoryEventEmitter
	jobRunner    *job.Runner

	// Rate limiting
	redisClient  *redis.Client
	redisCounter *ratelimit.RedisCounter
	limiter      *ratelimit.Limiter
}

// newApplication creates a new application instance with all dependencies initialized.
// The job runner is started; call shutdown to release it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		userStore: memory.NewUserStore(),
		taskStore: memory.NewTaskStore(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.redisClient, err = ratelimit.NewRedisClient(cfg.Redis.URL, cfg.Redis.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to configure redis: %w", err)
	}
	app.redisCounter = ratelimit.NewRedisCounter(app.redisClient, cfg.Redis.Timeout)
	app.limiter = ratelimit.NewLimiter(app.redisCounter, cfg.RateLimit.PerMinute)
	if err := app.redisCounter.Ping(ctx); err != nil {
		// The limiter fails open per request, so startup continues.
		logger.Warn("redis unreachable at startup, rate limiting will fail open",
			"error", redact.Error(err))
	}

	app.jobRunner = job.NewRunner(job.RunnerConfig{
		WorkerCount: cfg.Jobs.WorkerCount,
		QueueSize:   cfg.Jobs.QueueSize,
	}, logger)
	app.jobRunner.SetErrorHandler(func(j job.Job, err error) {
		logger.Error("background job failed",
			"job_id", j.ID(),
			"job_type", j.Type(),
			"error", redact.Error(err))
	})
	app.jobRunner.Start()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(job.NewEventHandler(app.jobRunner, logger))

	userService, err := service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		app.eventEmitter,
		logger,
	)
	if err != nil {
		app.shutdown(ctx)
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	app.userService = userService

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.shutdown(ctx)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if err := app.seedAdmin(ctx); err != nil {
		app.shutdown(ctx)
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// seedAdmin creates the configured administrator unless the username is
// taken. Nothing is seeded without a configured password.
func (app *application) seedAdmin(ctx context.Context) error {
	admin := app.config.Admin
	if admin.Password == "" {
		app.logger.Info("no admin password configured, skipping admin seeding")
		return nil
	}

	user, created, err := app.userService.EnsureAdmin(ctx, admin.Email, admin.Username, admin.Password)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if created {
		app.logger.Info("admin user created", "user_id", user.ID, "username", user.Username)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then releases every resource.
func (app *application) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", app.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		app.shutdown(ctx)
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	serveErr := app.serve(ctx, ln, app.setupRouter())
	app.shutdown(ctx)

	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}
	return nil
}

// shutdown drains the job runner and closes the Redis client.
func (app *application) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.Server.ShutdownTimeout)
	defer cancel()

	if app.jobRunner != nil {
		if err := app.jobRunner.Shutdown(shutdownCtx); err != nil {
			app.logger.Error("job runner did not drain before shutdown", "error", err)
		}
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			app.logger.Error("error closing redis client", "error", redact.Error(err))
		}
	}

	app.logger.Info("Application shutdown completed")
}
