package api

import (
	"errors"
	"net/http"

	"charmforge-be/internal/coupon"

	"github.com/gin-gonic/gin"
)

type validateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal"`
}

// ValidateCoupon is the public pre-checkout check. Business rejections
// (unknown code, expired, below minimum) come back as 200 with
// valid=false and a shopper-facing message; only data-layer failures
// are 5xx.
func (h *handlers) ValidateCoupon(c *gin.Context) {
	var req validateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.deps.Coupons.Validate(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate coupon"})
		return
	}

	body := gin.H{"valid": res.Valid}
	if res.Valid {
		body["discount_amount"] = res.DiscountAmount
		body["coupon"] = res.Coupon
	} else {
		body["message"] = res.Message
	}
	c.JSON(http.StatusOK, body)
}

func (h *handlers) ListCoupons(c *gin.Context) {
	limit := queryInt32(c, "limit", 20)
	page := queryInt32(c, "page", 1)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	coupons, err := h.deps.Coupons.List(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

func (h *handlers) CreateCoupon(c *gin.Context) {
	var cpn coupon.Coupon
	if err := c.ShouldBindJSON(&cpn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.deps.Coupons.Create(c.Request.Context(), &cpn); err != nil {
		if errors.Is(err, coupon.ErrDuplicateCode) {
			c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cpn)
}

func (h *handlers) UpdateCoupon(c *gin.Context) {
	var cpn coupon.Coupon
	if err := c.ShouldBindJSON(&cpn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cpn.ID = c.Param("id")

	if err := h.deps.Coupons.Update(c.Request.Context(), &cpn); err != nil {
		if errors.Is(err, coupon.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cpn)
}

func (h *handlers) DeleteCoupon(c *gin.Context) {
	if err := h.deps.Coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, coupon.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete coupon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
