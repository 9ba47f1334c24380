package domain

import "errors"

// Business-level error kinds. Services translate the repository taxonomy
// into these; the transport layer maps them to status codes.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrBadRequest       = errors.New("bad request")
	ErrInternal         = errors.New("internal error")
)
