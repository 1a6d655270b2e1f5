package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/session"
)

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves a session id to the user cached in its payload.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (model.PublicUser, error)
}

// SessionAuth returns middleware that guards a route behind a valid
// session. No cookie fails unauthorized outright; a cookie whose session
// resolved to nothing additionally clears the cookie, since expired and
// never-existed are indistinguishable. On success the user projection is
// attached to the request context.
func SessionAuth(auth Authenticator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := SessionIDFromRequest(r, cookieName)
			if sessionID == "" {
				apperr.WriteError(w, r, apperr.Unauthorized())
				return
			}

			user, err := auth.Authenticate(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					ClearSessionCookie(w, cookieName)
					apperr.WriteError(w, r, apperr.Unauthorized())
					return
				}
				apperr.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (model.PublicUser, bool) {
	user, ok := ctx.Value(userKey).(model.PublicUser)
	return user, ok
}
