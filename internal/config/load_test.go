package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

// setupEnv sets environment variables for the duration of the test.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default values
// when only the required settings are provided.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKAPI_AUTH_JWT_SECRET": testSecret,
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10, cfg.Auth.BCryptCost)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.Timeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.PerMinute)
	assert.Empty(t, cfg.Admin.Password, "no admin should be seeded by default")
	assert.Equal(t, 2, cfg.Jobs.WorkerCount)
	assert.Equal(t, 100, cfg.Jobs.QueueSize)
	assert.Equal(t, 2*time.Second, cfg.Jobs.SimulatedWork)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"TASKAPI_SERVER_PORT":                 "9090",
		"TASKAPI_SERVER_LOG_LEVEL":            "debug",
		"TASKAPI_SERVER_CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com",
		"TASKAPI_AUTH_JWT_SECRET":             testSecret,
		"TASKAPI_AUTH_TOKEN_LIFETIME_MINUTES": "15",
		"TASKAPI_REDIS_URL":                   "redis://cache:6380/2",
		"TASKAPI_REDIS_TIMEOUT":               "1s",
		"TASKAPI_RATE_LIMIT_ENABLED":          "false",
		"TASKAPI_RATE_LIMIT_PER_MINUTE":       "120",
		"TASKAPI_ADMIN_PASSWORD":              "Admin1234",
		"TASKAPI_JOBS_WORKER_COUNT":           "4",
	})

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 15, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "redis://cache:6380/2", cfg.Redis.URL)
	assert.Equal(t, time.Second, cfg.Redis.Timeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
	assert.Equal(t, "Admin1234", cfg.Admin.Password)
	assert.Equal(t, 4, cfg.Jobs.WorkerCount)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "missing jwt secret",
			envVars: map[string]string{"TASKAPI_SERVER_PORT": "9090"},
		},
		{
			name: "short jwt secret",
			envVars: map[string]string{
				"TASKAPI_AUTH_JWT_SECRET": "tooshort",
			},
		},
		{
			name: "invalid port number",
			envVars: map[string]string{
				"TASKAPI_AUTH_JWT_SECRET": testSecret,
				"TASKAPI_SERVER_PORT":     "999999",
			},
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"TASKAPI_AUTH_JWT_SECRET":  testSecret,
				"TASKAPI_SERVER_LOG_LEVEL": "verbose",
			},
		},
		{
			name: "zero rate limit",
			envVars: map[string]string{
				"TASKAPI_AUTH_JWT_SECRET":       testSecret,
				"TASKAPI_RATE_LIMIT_PER_MINUTE": "0",
			},
		},
		{
			name: "admin password too short",
			envVars: map[string]string{
				"TASKAPI_AUTH_JWT_SECRET": testSecret,
				"TASKAPI_ADMIN_PASSWORD":  "short",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}
