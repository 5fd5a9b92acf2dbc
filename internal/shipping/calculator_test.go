package shipping

import (
	"testing"

	"charmforge-be/internal/coupon"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_Cost(t *testing.T) {
	calc := NewCalculator(499, 49)

	t.Run("ThresholdBoundaryIsStrict", func(t *testing.T) {
		// Exactly at the threshold still pays; one unit above ships free.
		assert.Equal(t, 49.0, calc.Cost(499, nil))
		assert.Equal(t, 0.0, calc.Cost(500, nil))
	})

	t.Run("BelowThresholdNoCoupon", func(t *testing.T) {
		assert.Equal(t, 49.0, calc.Cost(100, nil))
	})

	t.Run("FreeShippingCoupon", func(t *testing.T) {
		cpn := &coupon.Coupon{Code: "SHIPFREE", DiscountType: coupon.DiscountFreeShipping}
		assert.Equal(t, 0.0, calc.Cost(100, cpn))
	})

	t.Run("BroDiscountCode", func(t *testing.T) {
		cpn := &coupon.Coupon{Code: BroDiscountCode, DiscountType: coupon.DiscountFixed}
		assert.Equal(t, 0.0, calc.Cost(100, cpn))
	})

	t.Run("OrdinaryCouponStillPays", func(t *testing.T) {
		cpn := &coupon.Coupon{Code: "FIVEOFF", DiscountType: coupon.DiscountPercentage}
		assert.Equal(t, 49.0, calc.Cost(100, cpn))
	})

	t.Run("ThresholdWinsOverCoupon", func(t *testing.T) {
		cpn := &coupon.Coupon{Code: "SHIPFREE", DiscountType: coupon.DiscountFreeShipping}
		assert.Equal(t, 0.0, calc.Cost(10_000, cpn))
	})

	t.Run("LowThresholdScenario", func(t *testing.T) {
		small := NewCalculator(30, 49)
		assert.Equal(t, 0.0, small.Cost(400, nil))
	})
}
