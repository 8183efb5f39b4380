package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"      validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Jobs      JobsConfig      `mapstructure:"jobs"       validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins lists origins accepted by the CORS stage. "*" allows any.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1"`
	// TrustProxyHeaders makes the server take the client address from
	// X-Forwarded-For / X-Real-IP. Only enable behind a trusted proxy.
	TrustProxyHeaders bool          `mapstructure:"trust_proxy_headers"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=1440"`
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
}

// RedisConfig contains the connection settings for the rate-limit counter store.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
	// Timeout bounds every counter call made on the request path.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// RateLimitConfig controls the per-client admission stage.
type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PerMinute int  `mapstructure:"per_minute" validate:"required,gt=0"`
}

// AdminConfig describes the administrator account seeded at startup.
// No account is seeded when Password is empty.
type AdminConfig struct {
	Username string `mapstructure:"username" validate:"omitempty,min=3,max=50"`
	Email    string `mapstructure:"email"    validate:"omitempty,email"`
	Password string `mapstructure:"password" validate:"omitempty,min=8,max=72"`
}

// JobsConfig contains settings for the background job runner.
type JobsConfig struct {
	WorkerCount   int           `mapstructure:"worker_count"  validate:"required,gt=0"`
	QueueSize     int           `mapstructure:"queue_size"    validate:"required,gt=0"`
	SimulatedWork time.Duration `mapstructure:"simulated_work" validate:"gte=0"`
}
