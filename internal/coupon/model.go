package coupon

import "time"

type DiscountType string

const (
	DiscountFixed        DiscountType = "fixed"
	DiscountPercentage   DiscountType = "percentage"
	DiscountFreeShipping DiscountType = "free_shipping"
)

type Coupon struct {
	ID          string `json:"id"`
	Code        string `json:"code"` // stored upper-cased, matched case-insensitively
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	// ValidUntil is epoch seconds; nil never expires. A coupon whose
	// ValidUntil equals the current second is still valid.
	ValidUntil        *int64       `json:"valid_until,omitempty"`
	MinOrderAmount    *float64     `json:"min_order_amount,omitempty"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty"` // percentage type only
	CreatedAt         time.Time    `json:"created_at"`
}

// ValidationResult is what checkout gets back. Validation failures are
// data, not errors: Message carries the shopper-facing reason.
type ValidationResult struct {
	Valid          bool
	Message        string
	DiscountAmount float64
	Coupon         *Coupon
}
