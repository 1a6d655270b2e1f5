package middleware

import (
	"net/http"
	"time"
)

// SetSessionCookie attaches the session id cookie to the response.
// HttpOnly keeps scripts away from the id, Secure restricts it to HTTPS,
// and SameSite=Lax limits cross-site sends.
func SetSessionCookie(w http.ResponseWriter, name, sessionID string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie instructs the client to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionIDFromRequest reads the session id cookie, returning "" when the
// cookie is absent.
func SessionIDFromRequest(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
