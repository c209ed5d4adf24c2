// internal/app/system/httpjson/httpjson.go
// Package httpjson provides the JSON response helpers shared by all API
// feature handlers, so every endpoint emits the same shapes.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorBody is the single error shape returned by every endpoint.
type ErrorBody struct {
	Message string `json:"message"`
}

// Write sends v as JSON with the given status. Headers must be set before
// the first body write, so the order here is fixed.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error sends an ErrorBody with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, ErrorBody{Message: message})
}

// Internal logs err and sends a generic 500 without leaking details.
func Internal(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error(op, zap.Error(err))
	}
	Error(w, http.StatusInternalServerError, "internal error")
}

// Decode reads the request body into v. Unknown fields are rejected so
// client typos surface as 400s instead of silently dropped fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
