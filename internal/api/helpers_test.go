package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

// testEnv is an isolated API instance over fresh in-memory stores.
type testEnv struct {
	handler http.Handler
	users   *memory.UserStore
	tasks   *memory.TaskStore
	userSvc service.UserService
	jwt     auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, _ := logger.NewTestLogger()
	users := memory.NewUserStore()
	tasks := memory.NewTaskStore()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userSvc, err := service.NewUserService(users, auth.NewBcryptHasher(bcrypt.MinCost), nil, log)
	require.NoError(t, err)
	taskSvc, err := service.NewTaskService(tasks, log)
	require.NoError(t, err)

	authHandler := api.NewAuthHandler(userSvc, jwtService)
	taskHandler := api.NewTaskHandler(taskSvc)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, users)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
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

	return &testEnv{handler: r, users: users, tasks: tasks, userSvc: userSvc, jwt: jwtService}
}

// do sends a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// createUser registers a user directly through the service and returns a token.
func (e *testEnv) createUser(t *testing.T, username string) (*domain.User, string) {
	t.Helper()
	user, err := e.userSvc.Register(context.Background(), username+"@example.com", username, "Password1")
	require.NoError(t, err)
	token, err := e.jwt.GenerateToken(context.Background(), user.ID)
	require.NoError(t, err)
	return user, token
}

// createAdmin seeds an admin account and returns a token.
func (e *testEnv) createAdmin(t *testing.T) (*domain.User, string) {
	t.Helper()
	user, created, err := e.userSvc.EnsureAdmin(context.Background(), "admin@example.com", "admin", "AdminPass1")
	require.NoError(t, err)
	require.True(t, created)
	token, err := e.jwt.GenerateToken(context.Background(), user.ID)
	require.NoError(t, err)
	return user, token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorBody {
	t.Helper()
	return decodeJSON[shared.ErrorResponse](t, rec).Error
}
