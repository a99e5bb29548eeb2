package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"agendabooking/internal/domain"
)

// WriteDomainError maps a service error onto the response envelope:
// validation failures and duplicate emails become 400, forbidden 403,
// missing resources 404, schedule conflicts 409, anything else 500 (logged).
func WriteDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, vErr.Error())
		return
	}
	var cErr *domain.ConflictError
	if errors.As(err, &cErr) {
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, cErr.Error())
		return
	}
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "email already registered")
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
	}
}
