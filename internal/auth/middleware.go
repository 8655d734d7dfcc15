package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/tcm/internal/models"
)

// UserLookup is the user storage the middleware needs
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Middleware attaches the principal named by the request's basic-auth
// username. Requests without credentials, or naming an unknown user, continue
// anonymously; RequireLogin decides whether that is acceptable.
func Middleware(users UserLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, _, ok := r.BasicAuth()
			if !ok || username == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByUsername(r.Context(), username)
			if err != nil {
				if !errors.Is(err, models.ErrNotFound) {
					logger.Error("failed to resolve user", "username", username, "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				logger.Debug("unknown user", "username", username)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), FromUser(user))))
		})
	}
}

// RequireLogin answers 401 for requests without a principal
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="tcm"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
