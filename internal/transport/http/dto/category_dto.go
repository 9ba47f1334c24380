package dto

import (
	"github.com/google/uuid"

	"github.com/zen-techno/zen/internal/domain"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"user_id"`
}

func NewCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:     c.ID,
		Name:   c.Name,
		UserID: c.UserID,
	}
}
