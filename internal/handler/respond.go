package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adaa/backoffice-go/internal/apperr"
)

// decodeJSON reads a JSON body into dst, capping the body at 1MB.
// A malformed or oversized body reads as a validation failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation(nil, "Invalid request body.").WithCause(err)
	}
	return nil
}
