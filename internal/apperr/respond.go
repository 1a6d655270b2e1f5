package apperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape for every endpoint, success or
// failure.
type Envelope struct {
	Data        any               `json:"data"`
	Errors      []string          `json:"errors"`
	ErrorCode   string            `json:"errorCode"`
	Code        int               `json:"code"`
	Message     string            `json:"message,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// WriteData renders a success envelope with the given payload.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{
		Data:      data,
		Errors:    []string{},
		ErrorCode: TagNoError,
		Code:      CodeNoError,
	})
}

// WriteError classifies err and renders the matching envelope. Classified
// errors are logged at warn; anything else is logged at error with the full
// cause and rendered as an opaque internal server error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	logAttrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", appErr.Status,
		"errorCode", appErr.Tag,
	}
	if appErr.Code == CodeInternal {
		slog.Error("request failed", append(logAttrs, "error", appErr.Unwrap())...)
	} else {
		slog.Warn("request rejected", append(logAttrs, "message", appErr.Message)...)
	}

	env := Envelope{
		Data:      struct{}{},
		Errors:    []string{appErr.Message},
		ErrorCode: appErr.Tag,
		Code:      appErr.Code,
		Message:   appErr.Message,
	}
	if appErr.Code == CodeValidation {
		// Validation failures carry per-field messages instead of a
		// top-level message.
		env.Errors = appErr.FormErrors
		if env.Errors == nil {
			env.Errors = []string{}
		}
		env.Message = ""
		env.FieldErrors = appErr.FieldErrors
	}

	writeJSON(w, appErr.Status, env)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
