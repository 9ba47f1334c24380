package handlers

import (
	"net/http"

	userssvc "github.com/zen-techno/zen/internal/services/users"
	"github.com/zen-techno/zen/internal/transport/http/dto"
	httperrors "github.com/zen-techno/zen/internal/transport/http/errors"
)

type UserHandler struct {
	service *userssvc.Service
}

func NewUserHandler(service *userssvc.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	users, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}

	httperrors.Write(w, http.StatusOK, out)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	user, err := h.service.UpdateByID(r.Context(), userID, userssvc.UpdateParams{
		Name:       req.Name,
		Email:      req.Email,
		TelegramID: req.TelegramID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	if err := h.service.DeleteByID(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
