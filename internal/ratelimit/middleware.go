package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"internship-service/internal/httputil"
	"internship-service/internal/identity"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Middleware rejects requests over the limit with 429. Requests are keyed by
// the authenticated profile, falling back to the client IP.
func Middleware(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := Key(r)
			if !limiter.Allow(r.Context(), key) {
				logger.WarnContext(r.Context(), "rate limit exceeded", "key", key, "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func Key(r *http.Request) string {
	if caller, ok := identity.FromContext(r.Context()); ok {
		return "profile:" + strconv.Itoa(caller.ProfileID)
	}
	return "ip:" + ClientIP(r)
}

func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
