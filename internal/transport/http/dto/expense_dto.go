package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
)

type ExpenseRequest struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	// TransactionAt is optional; the server stamps the creation time
	// when it is omitted.
	TransactionAt *time.Time `json:"transaction_at,omitempty"`
}

type ExpenseResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Amount        int64     `json:"amount"`
	TransactionAt time.Time `json:"transaction_at"`
	WhoPaidID     uuid.UUID `json:"who_paid_id"`
	CategoryID    uuid.UUID `json:"category_id"`
}

func NewExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Name:          e.Name,
		Amount:        e.Amount,
		TransactionAt: e.TransactionAt,
		WhoPaidID:     e.WhoPaidID,
		CategoryID:    e.CategoryID,
	}
}
