package handlers

import (
	"net/http"

	"github.com/google/uuid"

	categoriessvc "github.com/zen-techno/zen/internal/services/categories"
	"github.com/zen-techno/zen/internal/transport/http/dto"
	httperrors "github.com/zen-techno/zen/internal/transport/http/errors"
)

type CategoryHandler struct {
	service *categoriessvc.Service
}

func NewCategoryHandler(service *categoriessvc.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	categories, err := h.service.GetAll(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.NewCategoryResponse(c))
	}

	httperrors.Write(w, http.StatusOK, out)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	categoryID, ok := parseUUIDParam(r, "categoryID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid category id")
		return
	}

	category, err := h.service.GetByID(r.Context(), userID, categoryID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	categoryID, ok := parseUUIDParam(r, "categoryID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid category id")
		return
	}

	var req dto.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.service.UpdateByID(r.Context(), userID, categoryID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.scope(w, r)
	if !ok {
		return
	}
	categoryID, ok := parseUUIDParam(r, "categoryID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid category id")
		return
	}

	if err := h.service.DeleteByID(r.Context(), userID, categoryID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if h.service == nil {
		writeInternal(w, "CATEGORY_SERVICE_UNAVAILABLE", "category service is unavailable")
		return uuid.Nil, false
	}

	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return uuid.Nil, false
	}

	return userID, true
}
