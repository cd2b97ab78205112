package service

import "errors"

// Domain errors surfaced to handlers, which translate them into HTTP
// statuses. Data-integrity anomalies (orphan and duplicate cart rows) are
// recovered silently and never map to an error.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrAlreadyFavorite    = errors.New("already in favorites")
	ErrImageRequired      = errors.New("product requires at least one image")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
