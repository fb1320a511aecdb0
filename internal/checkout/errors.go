package checkout

import "errors"

var (
	ErrEmptyCart              = errors.New("cart is empty, nothing to checkout")
	ErrInsufficientStock      = errors.New("insufficient stock at checkout")
	ErrIdempotencyKeyNotFound = errors.New("no order for idempotency key")
)
