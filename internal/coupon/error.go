package coupon

import "errors"

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrDuplicateCode  = errors.New("coupon code already exists")
)

// Shopper-facing validation messages. The invalid-code message is shared
// by unknown and inactive coupons so the response does not leak which of
// the two it was.
const (
	MsgInvalidCode  = "Invalid coupon code"
	MsgExpired      = "Coupon has expired"
	MsgBelowMinimum = "Order amount is below the coupon minimum"
)
