package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/crypto"
	"github.com/adaa/backoffice-go/internal/mail"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/repository"
	"github.com/adaa/backoffice-go/internal/session"
)

// CredentialStore is the persistence surface the auth service needs for
// durable identity data.
type CredentialStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	SetVerified(ctx context.Context, id string) error
}

// BreachChecker consults an external breach corpus for compromised
// passwords.
type BreachChecker interface {
	Compromised(ctx context.Context, password string) (bool, error)
}

// AuthService orchestrates login, signup, email verification, session
// issuance, and the per-request authentication guard.
type AuthService struct {
	users    CredentialStore
	sessions session.Store
	breach   BreachChecker
	tokens   *crypto.VerificationCodec
	mailer   mail.Mailer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users CredentialStore, sessions session.Store, breach BreachChecker, tokens *crypto.VerificationCodec, mailer mail.Mailer) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		breach:   breach,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password produce the same failure, so callers cannot enumerate
// accounts. The returned projection never carries the password hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.PublicUser, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.PublicUser{}, apperr.LoginFailure()
		}
		return model.PublicUser{}, fmt.Errorf("login: lookup user: %w", err)
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("login: verify password: %w", err)
	}
	if !match {
		return model.PublicUser{}, apperr.LoginFailure()
	}

	return user.Public(), nil
}

// Signup registers a new user. Compromised passwords and duplicate emails
// are rejected as validation failures; the duplicate check is best-effort
// and the store's uniqueness constraint resolves concurrent signups to one
// winner. The new account starts unverified and a verification link is
// issued out of band.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.PublicUser, error) {
	compromised, err := s.breach.Compromised(ctx, req.Password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("signup: breach check: %w", err)
	}
	if compromised {
		return model.PublicUser{}, apperr.Validation(map[string]string{
			"password": "This password has appeared in known data breaches and may be unsafe to use. Please choose a different password.",
		})
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return model.PublicUser{}, duplicateEmailError()
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.PublicUser{}, fmt.Errorf("signup: lookup existing user: %w", err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("signup: hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Verified:     false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost the race against a concurrent signup with the same email.
			return model.PublicUser{}, duplicateEmailError()
		}
		return model.PublicUser{}, fmt.Errorf("signup: create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("signup: issue verification token: %w", err)
	}
	// Delivery is best effort; the account exists either way and the user
	// can request another link.
	if err := s.mailer.SendVerification(ctx, user.Email, user.Name, token); err != nil {
		slog.Error("verification mail sending failed", "email", user.Email, "error", err)
	}

	return user.Public(), nil
}

// VerifyEmail validates a verification token and marks the bound user as
// verified. A token whose user no longer exists is a silent no-op and
// returns nil. When sessionID is non-empty, the session payload is
// rewritten with verified=true, restarting the full session lifetime.
func (s *AuthService) VerifyEmail(ctx context.Context, token, sessionID string) (*model.PublicUser, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return nil, apperr.ResourceExpired("This verification link has expired.")
		}
		return nil, fmt.Errorf("verify email: parse token: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Token is stale, nothing to do.
			return nil, nil
		}
		return nil, fmt.Errorf("verify email: lookup user: %w", err)
	}

	if err := s.users.SetVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("verify email: mark verified: %w", err)
	}
	user.Verified = true

	if sessionID != "" {
		if err := s.sessions.Set(ctx, sessionID, model.SessionPayloadFor(user.Public())); err != nil {
			return nil, fmt.Errorf("verify email: refresh session: %w", err)
		}
	}

	public := user.Public()
	return &public, nil
}

// NewSession issues a fresh session for the user and writes its payload to
// the session store with the full configured lifetime. The returned id is
// random and unguessable.
func (s *AuthService) NewSession(ctx context.Context, user model.PublicUser) (string, error) {
	sessionID := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionID, model.SessionPayloadFor(user)); err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return sessionID, nil
}

// Authenticate resolves a session id to the user projection cached in its
// payload. It deliberately trusts the payload rather than rechecking the
// credential store, trading a staleness window bounded by the session TTL
// for one less database round trip per request. Returns session.ErrNotFound
// when the id resolves to no record, expired or otherwise.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (model.PublicUser, error) {
	payload, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return model.PublicUser{}, err
	}
	return payload.User(), nil
}

// Logout deletes the session record. It always succeeds, even when the
// session never existed.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: delete session: %w", err)
	}
	return nil
}

func duplicateEmailError() *apperr.Error {
	return apperr.Validation(map[string]string{
		"email": "An account is already registered with this email address.",
	})
}
