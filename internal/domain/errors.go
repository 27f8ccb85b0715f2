package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest indicates malformed or out-of-range input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInsufficientStock indicates a decrement would take stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
