package auth

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"internship-service/internal/httputil"
	"internship-service/internal/identity"
)

const cookieName = "token"

// AccessValidator checks an access token and returns its claims.
type AccessValidator interface {
	ValidateAccessToken(token string) (*Claims, error)
}

// Middleware validates the access token from the "token" cookie or a Bearer
// header and stores the caller in the request context.
func Middleware(validator AccessValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				logger.WarnContext(r.Context(), "no auth token found", "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid token", "error", err)
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := identity.WithCaller(r.Context(), identity.Caller{
				ProfileID: claims.ProfileID,
				Role:      claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// CookieOptions control how the access token cookie is written.
type CookieOptions struct {
	Env    string
	MaxAge time.Duration
}

// SetAuthCookie sets JWT token in secure HttpOnly cookie
func SetAuthCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	sameSite := http.SameSiteStrictMode
	if opts.Env == "development" || opts.Env == "local" {
		sameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   opts.Env == "production" || opts.Env == "prod",
		SameSite: sameSite,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
	})
}

// ClearAuthCookie removes the auth cookie
func ClearAuthCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   opts.Env != "local",
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
