// Package apperr defines the closed set of classified failures the API can
// surface, and renders them as a uniform JSON envelope. Every user-facing
// failure is one of these kinds; anything unclassified is demoted to an
// opaque internal server error at the boundary.
package apperr

import "net/http"

// Internal numeric codes, one per kind. These are part of the wire contract
// and must not be renumbered.
const (
	CodeNoError          = 0
	CodeMethodNotAllowed = 2
	CodeValidation       = 3
	CodeInternal         = 4
	CodeRateLimited      = 5
	CodeNotFound         = 6
	CodeConflict         = 7
	CodeResourceExpired  = 8
	CodeUnauthorized     = 9
	CodeLoginFailure     = 10
)

// Stable machine-readable tags, one per kind.
const (
	TagNoError          = "NO_ERROR"
	TagMethodNotAllowed = "METHOD_NOT_ALLOWED"
	TagValidation       = "VALIDATION_ERROR"
	TagInternal         = "INTERNAL_SERVER_ERROR"
	TagRateLimited      = "RATE_LIMIT_EXCEEDED"
	TagNotFound         = "NOT_FOUND"
	TagConflict         = "CONFLICT"
	TagResourceExpired  = "RESOURCE_EXPIRED"
	TagUnauthorized     = "UNAUTHORIZED"
	TagLoginFailure     = "LOGIN_EXCEPTION"
)

const internalMessage = "An unexpected server error occurred. Please try again later."

// Error is a classified failure. It is created at the point of failure and
// propagated unmodified to the HTTP boundary.
type Error struct {
	Status      int
	Code        int
	Tag         string
	Message     string
	FieldErrors map[string]string
	FormErrors  []string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Tag + ": " + e.cause.Error()
	}
	return e.Tag + ": " + e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches an underlying error for internal logging. The cause is
// never rendered to the client.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Validation reports a 422 with per-field messages and optional form-level
// messages.
func Validation(fieldErrors map[string]string, formErrors ...string) *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        CodeValidation,
		Tag:         TagValidation,
		Message:     "There was an error validating the provided data.",
		FieldErrors: fieldErrors,
		FormErrors:  formErrors,
	}
}

// LoginFailure reports a generic credential mismatch. The message is
// identical whether the email is unknown or the password is wrong, to
// prevent account enumeration.
func LoginFailure() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeLoginFailure,
		Tag:     TagLoginFailure,
		Message: "The email address or password you entered is incorrect.",
	}
}

// Unauthorized reports a missing, invalid, or expired session.
func Unauthorized() *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeUnauthorized,
		Tag:     TagUnauthorized,
		Message: "You are not authorized to perform this action on this resource.",
	}
}

// ResourceExpired reports an expired verification token.
func ResourceExpired(message string) *Error {
	if message == "" {
		message = "Access to this resource has expired."
	}
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeResourceExpired,
		Tag:     TagResourceExpired,
		Message: message,
	}
}

// NotFound reports a resource lookup miss.
func NotFound(message string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Tag:     TagNotFound,
		Message: message,
	}
}

// Conflict reports a state conflict with an existing resource.
func Conflict(message string) *Error {
	if message == "" {
		message = "There is a conflict with the current state of the resource."
	}
	return &Error{
		Status:  http.StatusConflict,
		Code:    CodeConflict,
		Tag:     TagConflict,
		Message: message,
	}
}

// MethodNotAllowed reports an HTTP method not supported by the route.
func MethodNotAllowed() *Error {
	return &Error{
		Status:  http.StatusMethodNotAllowed,
		Code:    CodeMethodNotAllowed,
		Tag:     TagMethodNotAllowed,
		Message: "The HTTP method used is not allowed for this route.",
	}
}

// RateLimited reports that the client exceeded the request budget.
func RateLimited() *Error {
	return &Error{
		Status:  http.StatusTooManyRequests,
		Code:    CodeRateLimited,
		Tag:     TagRateLimited,
		Message: "You've made too many requests in a short period. Please wait a moment and try again.",
	}
}

// Internal wraps an unexpected fault. The cause is logged at the boundary
// and never disclosed to the client.
func Internal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Tag:     TagInternal,
		Message: internalMessage,
		cause:   cause,
	}
}
