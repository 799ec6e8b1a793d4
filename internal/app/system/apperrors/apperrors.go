// Package apperrors defines the domain error taxonomy shared by the
// lifecycle operations, the stores, and the HTTP layer.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound means a referenced user, task, admin, or blob is absent.
	ErrNotFound = errors.New("requested resource not found")
	// ErrValidation means required input (such as a submission file) is
	// missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the operation collides with existing state, e.g. a
	// duplicate mentee id or a double submission.
	ErrConflict = errors.New("resource conflict")
	// ErrUnauthorized means the caller is not signed in or presented a bad
	// credential.
	ErrUnauthorized = errors.New("unauthorized access")
	// ErrForbidden means the caller is signed in but lacks the role.
	ErrForbidden = errors.New("forbidden access")
	// ErrStorage means a blob or record I/O failure.
	ErrStorage = errors.New("storage failure")
)

// HTTPStatus maps a domain error to an HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrStorage):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
