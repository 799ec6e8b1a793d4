// Package httpjson provides the JSON request/response helpers used by all
// feature handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Respond writes payload as JSON with the given status code.
func Respond(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// Error writes a plain error body with the given status code.
func Error(w http.ResponseWriter, code int, message string) {
	Respond(w, code, ErrorResponse{Message: message})
}

// DomainError maps err through the apperrors taxonomy and writes it. The
// response carries the sentinel's message rather than the full chain so
// store internals do not leak to clients.
func DomainError(w http.ResponseWriter, err error) {
	code := apperrors.HTTPStatus(err)
	msg := err.Error()
	for _, sentinel := range []error{
		apperrors.ErrNotFound,
		apperrors.ErrValidation,
		apperrors.ErrConflict,
		apperrors.ErrUnauthorized,
		apperrors.ErrForbidden,
		apperrors.ErrStorage,
	} {
		if errors.Is(err, sentinel) {
			msg = sentinel.Error()
			break
		}
	}
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	Error(w, code, msg)
}

// Decode reads a JSON request body into dst. Unknown fields are rejected so
// typos in client payloads surface as 400s instead of silent drops.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
