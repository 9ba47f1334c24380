package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
	authsvc "github.com/zen-techno/zen/internal/services/auth"
	httperrors "github.com/zen-techno/zen/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

// writeDomainError maps service errors onto API statuses. Unknown errors
// collapse into an opaque 500; the request logger records them.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeNotFound(w, "CATEGORY_NOT_FOUND", "category not found")
	case errors.Is(err, domain.ErrExpenseNotFound):
		writeNotFound(w, "EXPENSE_NOT_FOUND", "expense not found")
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		writeBadRequest(w, "INVALID_CREDENTIALS", "invalid credentials")
	case errors.Is(err, authsvc.ErrExpiredToken):
		writeUnauthorized(w, "TOKEN_EXPIRED", "token expired")
	case errors.Is(err, authsvc.ErrInvalidToken), errors.Is(err, authsvc.ErrTokenNotFound):
		writeUnauthorized(w, "INVALID_TOKEN", "invalid token")
	case errors.Is(err, authsvc.ErrNotActive):
		httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: "ACCOUNT_INACTIVE", Message: "account is not active"})
	case errors.Is(err, authsvc.ErrTooManyAttempts):
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.APIError{Code: "TOO_MANY_ATTEMPTS", Message: "too many login attempts"})
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
