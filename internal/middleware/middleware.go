package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// CORS adds CORS headers to the response.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Auth verifies the Bearer token, loads the user and attaches the caller
// identity to the request context. Handlers behind it read the identity with
// auth.FromContext rather than any ambient state.
func Auth(tokens *auth.TokenManager, users repository.UserRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				logger.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
				unauthorised(w, "Not authorized, no token")
				return
			}

			userID, _, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Warn().Str("path", r.URL.Path).Msg("token verification failed")
				unauthorised(w, "Not authorized, token failed")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil || user == nil {
				logger.Warn().Str("user_id", userID.String()).Msg("token user not found")
				unauthorised(w, "Not authorized, token failed")
				return
			}

			ctx := auth.WithContext(r.Context(), auth.Context{
				UserID:  user.ID,
				Name:    user.Name,
				Email:   user.Email,
				IsAdmin: user.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers without the admin flag. It must run behind
// Auth.
func RequireAdmin(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := auth.FromContext(r.Context())
			if !ok || !ac.IsAdmin {
				logger.Warn().Str("path", r.URL.Path).Msg("admin access denied")
				unauthorised(w, "Not authorized as an admin")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds each request with a deadline so storage calls cannot hang
// past it. A timed-out request is terminal; the client decides whether to
// retry.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"message": "internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// unauthorised writes a 401 with the standard error envelope.
func unauthorised(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message": "` + message + `"}`))
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
