package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaa/backoffice-go/internal/apperr"
)

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimit(0.001, 2)(next)

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("203.0.113.1:1001").Code)

	rec := send("203.0.113.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var env apperr.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, apperr.TagRateLimited, env.ErrorCode)
	assert.Equal(t, apperr.CodeRateLimited, env.Code)

	// Budgets are tracked per client IP.
	assert.Equal(t, http.StatusOK, send("203.0.113.2:1000").Code)
}
