package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order has no lines to price")
	ErrAmountMismatch = errors.New("paid amount does not match order total")
)
