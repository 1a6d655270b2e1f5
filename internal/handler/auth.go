package handler

import (
	"net/http"
	"time"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/middleware"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/service"
	"github.com/adaa/backoffice-go/internal/validate"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service         *service.AuthService
	cookieName      string
	sessionLifetime time.Duration
	webURL          string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, cookieName string, sessionLifetime time.Duration, webURL string) *AuthHandler {
	return &AuthHandler{
		service:         svc,
		cookieName:      cookieName,
		sessionLifetime: sessionLifetime,
		webURL:          webURL,
	}
}

type userEnvelope struct {
	User model.PublicUser `json:"user"`
}

// HandleLogin handles POST /auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.WriteError(w, r, err)
		return
	}
	if err := validate.Login(req); err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	sessionID, err := h.service.NewSession(r.Context(), user)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, h.cookieName, sessionID, h.sessionLifetime)

	apperr.WriteData(w, http.StatusOK, userEnvelope{User: user})
}

// HandleSignup handles POST /auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.WriteError(w, r, err)
		return
	}
	if err := validate.Signup(req); err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	user, err := h.service.Signup(r.Context(), req)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	sessionID, err := h.service.NewSession(r.Context(), user)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, h.cookieName, sessionID, h.sessionLifetime)

	apperr.WriteData(w, http.StatusCreated, userEnvelope{User: user})
}

// HandleLogout handles POST /auth/logout requests. Logout always reports
// success, whether or not a session existed.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromRequest(r, h.cookieName)
	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		apperr.WriteError(w, r, err)
		return
	}

	middleware.ClearSessionCookie(w, h.cookieName)
	apperr.WriteData(w, http.StatusOK, struct{}{})
}

// HandleMe handles GET /auth/me requests. The session guard has already
// attached the user to the context.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperr.WriteError(w, r, apperr.Unauthorized())
		return
	}

	apperr.WriteData(w, http.StatusOK, userEnvelope{User: user})
}

// HandleVerify handles GET /auth/verify requests. The browser is redirected
// to the web frontend whether or not the token still matched a user; a
// stale token additionally clears the session cookie.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	sessionID := middleware.SessionIDFromRequest(r, h.cookieName)

	// Already verified? Nothing to do.
	if sessionID != "" {
		if user, err := h.service.Authenticate(r.Context(), sessionID); err == nil && user.Verified {
			http.Redirect(w, r, h.webURL, http.StatusFound)
			return
		}
	}

	user, err := h.service.VerifyEmail(r.Context(), token, sessionID)
	if err != nil {
		apperr.WriteError(w, r, err)
		return
	}
	if user == nil {
		middleware.ClearSessionCookie(w, h.cookieName)
	}

	http.Redirect(w, r, h.webURL, http.StatusFound)
}
