package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/ratelimit"
	"github.com/phrazzld/task-api/internal/redact"
)

// Rate limit response headers.
const (
	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
	RateLimitResetHeader     = "X-RateLimit-Reset"
)

const (
	msgTooManyRequests = "Too many requests. Please try again later."

	// exemptPrefix marks paths never counted against a client.
	exemptPrefix = "/health"

	// tokenHashLength is the number of hex characters of the token hash kept
	// in the identity.
	tokenHashLength = 32
)

// Admitter decides whether one more request from identity may proceed.
type Admitter interface {
	Allow(ctx context.Context, identity string) (ratelimit.Decision, error)
}

// RateLimit returns a stage that admits at most the limiter's quota per
// client per minute. When the limiter fails the request is let through
// without rate-limit headers.
func RateLimit(limiter Admitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ClientIdentity(r)
			ctx := shared.WithClientIdentity(r.Context(), identity)
			r = r.WithContext(ctx)

			if strings.HasPrefix(r.URL.Path, exemptPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(ctx, identity)
			if err != nil {
				logger.FromContext(ctx).Warn("rate limiter unavailable, allowing request",
					"error", redact.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set(RateLimitLimitHeader, strconv.Itoa(decision.Limit))
			h.Set(RateLimitRemainingHeader, strconv.Itoa(decision.Remaining))
			h.Set(RateLimitResetHeader, strconv.FormatInt(decision.Reset.Unix(), 10))

			if !decision.Allowed {
				shared.RespondWithError(w, r, shared.TooManyRequests(msgTooManyRequests, decision.RetryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIdentity names the caller for rate limiting: a hash of the bearer
// token when one is present, otherwise the remote host.
func ClientIdentity(r *http.Request) string {
	if token, err := shared.BearerToken(r); err == nil {
		sum := sha256.Sum256([]byte(token))
		return "user:" + hex.EncodeToString(sum[:])[:tokenHashLength]
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
