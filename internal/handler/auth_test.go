package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaa/backoffice-go/internal/apperr"
	"github.com/adaa/backoffice-go/internal/crypto"
	"github.com/adaa/backoffice-go/internal/model"
	"github.com/adaa/backoffice-go/internal/repository"
	"github.com/adaa/backoffice-go/internal/service"
	"github.com/adaa/backoffice-go/internal/session"
)

const (
	testCookieName = "sessionId"
	testWebURL     = "https://backoffice.example.com"
)

type stubUsers struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byEmail: make(map[string]*model.User),
		byID:    make(map[string]*model.User),
	}
}

func (s *stubUsers) Create(_ context.Context, user *model.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = "new-user-id"
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) SetVerified(_ context.Context, id string) error {
	if u, ok := s.byID[id]; ok {
		u.Verified = true
	}
	return nil
}

type stubBreach struct{ compromised bool }

func (s *stubBreach) Compromised(context.Context, string) (bool, error) {
	return s.compromised, nil
}

type stubMailer struct{ token string }

func (s *stubMailer) SendVerification(_ context.Context, _, _, token string) error {
	s.token = token
	return nil
}

type authFixture struct {
	handler  *AuthHandler
	users    *stubUsers
	sessions *session.MemoryStore
	tokens   *crypto.VerificationCodec
	mailer   *stubMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newStubUsers()
	sessions := session.NewMemoryStore(time.Hour)
	tokens := crypto.NewVerificationCodec("test-secret", 24*time.Hour)
	mailer := &stubMailer{}
	svc := service.NewAuthService(users, sessions, &stubBreach{}, tokens, mailer)
	return &authFixture{
		handler:  NewAuthHandler(svc, testCookieName, time.Hour, testWebURL),
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		mailer:   mailer,
	}
}

func (f *authFixture) seedUser(t *testing.T, password string, verified bool) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	u := &model.User{
		ID:           "user-1",
		Name:         "Alice Smith",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Verified:     verified,
	}
	f.users.byEmail[u.Email] = u
	f.users.byID[u.ID] = u
	return u
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apperr.Envelope {
	t.Helper()
	var env apperr.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func TestHandleLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "s3cret-password", true)

	rec := postJSON(f.handler.HandleLogin, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret-password"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, apperr.TagNoError, env.ErrorCode)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var payload struct {
		User model.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "alice@example.com", payload.User.Email)
	assert.NotContains(t, rec.Body.String(), "$2a$", "password hash leaked into the response")

	// The cookie carries a session that resolves to the user.
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "no session cookie set")
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	got, err := f.sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
}

func TestHandleLoginFailureParityOnWire(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "s3cret-password", true)

	unknown := postJSON(f.handler.HandleLogin, "/auth/login",
		`{"email":"nobody@example.com","password":"s3cret-password"}`)
	wrong := postJSON(f.handler.HandleLogin, "/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	// Indistinguishable responses; nothing for an enumerator to learn.
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())

	env := decodeEnvelope(t, unknown)
	assert.Equal(t, apperr.TagLoginFailure, env.ErrorCode)
	assert.Equal(t, apperr.CodeLoginFailure, env.Code)
	assert.Nil(t, sessionCookie(unknown), "no session may be issued on failure")
}

func TestHandleLoginMalformedBody(t *testing.T) {
	f := newAuthFixture(t)

	rec := postJSON(f.handler.HandleLogin, "/auth/login", `{"email": `)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, apperr.TagValidation, env.ErrorCode)
}

func TestHandleSignupSuccess(t *testing.T) {
	f := newAuthFixture(t)

	rec := postJSON(f.handler.HandleSignup, "/auth/signup",
		`{"name":"Bob Jones","email":"bob@example.com","password":"uncompromised-pw-1","password_confirmation":"uncompromised-pw-1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, apperr.TagNoError, env.ErrorCode)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var payload struct {
		User model.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.False(t, payload.User.Verified)

	require.NotNil(t, sessionCookie(rec), "signup must establish a session")

	// A verification link went out for the new account.
	userID, err := f.tokens.Parse(f.mailer.token)
	require.NoError(t, err)
	assert.Equal(t, "new-user-id", userID)
}

func TestHandleSignupValidation(t *testing.T) {
	f := newAuthFixture(t)

	rec := postJSON(f.handler.HandleSignup, "/auth/signup",
		`{"name":"Bob","email":"bad","password":"pw","password_confirmation":""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, apperr.TagValidation, env.ErrorCode)
	assert.Empty(t, env.Message)
	for _, field := range []string{"name", "email", "password", "password_confirmation"} {
		assert.Contains(t, env.FieldErrors, field)
	}
	assert.Nil(t, sessionCookie(rec))
}

func TestHandleSignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "s3cret-password", true)

	rec := postJSON(f.handler.HandleSignup, "/auth/signup",
		`{"name":"Alice Clone","email":"alice@example.com","password":"uncompromised-pw-1","password_confirmation":"uncompromised-pw-1"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.FieldErrors, "email")
}

func TestHandleLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.sessions.Set(ctx, "sess-1", model.SessionPayload{ID: "user-1"}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	f.handler.HandleLogout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0, "logout must expire the cookie")

	_, err := f.sessions.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestHandleLogoutWithoutSession(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	f.handler.HandleLogout(rec, req)

	// Still a success; there is nothing to reveal about session existence.
	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, apperr.TagNoError, env.ErrorCode)
}

func TestHandleVerify(t *testing.T) {
	f := newAuthFixture(t)
	f.users.byID["user-1"] = &model.User{ID: "user-1", Name: "Alice Smith", Email: "alice@example.com"}
	f.users.byEmail["alice@example.com"] = f.users.byID["user-1"]

	token, err := f.tokens.Issue("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+token, nil)
	rec := httptest.NewRecorder()
	f.handler.HandleVerify(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, testWebURL, rec.Header().Get("Location"))
	assert.True(t, f.users.byID["user-1"].Verified)
}

func TestHandleVerifyExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	f.users.byID["user-1"] = &model.User{ID: "user-1"}

	expired := crypto.NewVerificationCodec("test-secret", -time.Hour)
	token, err := expired.Issue("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+token, nil)
	rec := httptest.NewRecorder()
	f.handler.HandleVerify(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, apperr.TagResourceExpired, env.ErrorCode)
	assert.Equal(t, apperr.CodeResourceExpired, env.Code)
}

func TestHandleVerifyStaleUserClearsCookie(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.tokens.Issue("deleted-user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+token, nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-gone"})
	rec := httptest.NewRecorder()
	f.handler.HandleVerify(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestHandleVerifyRefreshesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.users.byID["user-1"] = &model.User{ID: "user-1", Name: "Alice Smith", Email: "alice@example.com"}

	ctx := context.Background()
	require.NoError(t, f.sessions.Set(ctx, "sess-1", model.SessionPayload{
		ID: "user-1", Name: "Alice Smith", Email: "alice@example.com",
	}))

	token, err := f.tokens.Issue("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token="+token, nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	f.handler.HandleVerify(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)

	payload, err := f.sessions.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, payload.Verified)
}
