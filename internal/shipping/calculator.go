package shipping

import "charmforge-be/internal/coupon"

// BroDiscountCode is a legacy promotional code that ships free
// regardless of its configured discount type.
const BroDiscountCode = "BRODISCOUNT"

// Calculator derives the shipping cost of an order. Threshold and flat
// rate come from configuration, not from business logic.
type Calculator struct {
	FreeShippingThreshold float64
	FlatRate              float64
}

func NewCalculator(threshold, flatRate float64) Calculator {
	return Calculator{FreeShippingThreshold: threshold, FlatRate: flatRate}
}

// Cost applies the shipping rules in order, first match wins. The
// threshold comparison is strictly greater-than: a subtotal exactly at
// the threshold still pays the flat rate.
func (c Calculator) Cost(subtotal float64, cpn *coupon.Coupon) float64 {
	if subtotal > c.FreeShippingThreshold {
		return 0
	}
	if cpn != nil && cpn.DiscountType == coupon.DiscountFreeShipping {
		return 0
	}
	if cpn != nil && cpn.Code == BroDiscountCode {
		return 0
	}
	return c.FlatRate
}
