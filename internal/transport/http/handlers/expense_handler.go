package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	expensessvc "github.com/zen-techno/zen/internal/services/expenses"
	"github.com/zen-techno/zen/internal/transport/http/dto"
	httperrors "github.com/zen-techno/zen/internal/transport/http/errors"
)

type ExpenseHandler struct {
	service *expensessvc.Service
}

func NewExpenseHandler(service *expensessvc.Service) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := h.scope(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetAll(r.Context(), userID, categoryID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]dto.ExpenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, dto.NewExpenseResponse(e))
	}

	httperrors.Write(w, http.StatusOK, out)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := h.scope(w, r)
	if !ok {
		return
	}
	expenseID, ok := parseUUIDParam(r, "expenseID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid expense id")
		return
	}

	expense, err := h.service.GetByID(r.Context(), userID, categoryID, expenseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	expense, err := h.service.Create(r.Context(), userID, categoryID, expenseParams(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := h.scope(w, r)
	if !ok {
		return
	}
	expenseID, ok := parseUUIDParam(r, "expenseID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid expense id")
		return
	}

	var req dto.ExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	expense, err := h.service.UpdateByID(r.Context(), userID, categoryID, expenseID, expenseParams(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewExpenseResponse(expense))
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := h.scope(w, r)
	if !ok {
		return
	}
	expenseID, ok := parseUUIDParam(r, "expenseID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid expense id")
		return
	}

	if err := h.service.DeleteByID(r.Context(), userID, categoryID, expenseID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	if h.service == nil {
		writeInternal(w, "EXPENSE_SERVICE_UNAVAILABLE", "expense service is unavailable")
		return uuid.Nil, uuid.Nil, false
	}

	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return uuid.Nil, uuid.Nil, false
	}
	categoryID, ok := parseUUIDParam(r, "categoryID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid category id")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, categoryID, true
}

func expenseParams(req dto.ExpenseRequest) expensessvc.Params {
	var transactionAt time.Time
	if req.TransactionAt != nil {
		transactionAt = *req.TransactionAt
	}

	return expensessvc.Params{
		Name:          req.Name,
		Amount:        req.Amount,
		TransactionAt: transactionAt,
	}
}
