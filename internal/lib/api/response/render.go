package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"labBooker/internal/lib/apperror"
)

// StatusOf maps a service error to its HTTP status.
func StatusOf(err error) int {
	var (
		validationErr *apperror.ValidationError
		conflictErr   *apperror.ConflictError
		notFoundErr   *apperror.NotFoundError
		authErr       *apperror.AuthorizationError
		stateErr      *apperror.StateError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr), errors.As(err, &stateErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes err as a JSON error. Business errors keep their message;
// anything else is reported as internalMsg.
func RenderError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	var (
		validationErr *apperror.ValidationError
		conflictErr   *apperror.ConflictError
		stateErr      *apperror.StateError
	)

	status := StatusOf(err)
	render.Status(r, status)

	switch {
	case errors.As(err, &validationErr):
		render.JSON(w, r, ErrorWithCode(validationErr.Reason, string(validationErr.Code)))
	case errors.As(err, &conflictErr):
		render.JSON(w, r, Conflict(conflictErr.Reason, conflictErr.Conflicts))
	case errors.As(err, &stateErr):
		render.JSON(w, r, ErrorWithCode(stateErr.Reason, string(stateErr.Code)))
	case status == http.StatusInternalServerError:
		render.JSON(w, r, Error(internalMsg))
	default:
		render.JSON(w, r, Error(err.Error()))
	}
}
