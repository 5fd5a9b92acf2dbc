package api

import (
	"errors"
	"net/http"

	"charmforge-be/internal/order"

	"github.com/gin-gonic/gin"
)

// Checkout prices the cart server-side and places the order. The
// response carries the authoritative pricing block plus, for online
// payment, the gateway order id the frontend hands to Razorpay checkout.
func (h *handlers) Checkout(c *gin.Context) {
	var input order.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.deps.Orders.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, order.ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order has no products"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"order_id": o.ID,
		"status":   o.Status,
		"pricing":  o.Pricing,
		"payment": gin.H{
			"method": o.Payment.Method,
			"status": o.Payment.Status,
		},
	}
	if o.Payment.RazorpayOrderID != nil {
		resp["razorpay_order_id"] = *o.Payment.RazorpayOrderID
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handlers) ListOrders(c *gin.Context) {
	filter := order.ListFilter{
		Limit: queryInt32(c, "limit", 20),
		Page:  queryInt32(c, "page", 1),
	}
	if raw := c.Query("status"); raw != "" {
		st := order.Status(raw)
		filter.Status = &st
	}

	orders, err := h.deps.Orders.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) GetOrder(c *gin.Context) {
	o, err := h.deps.Orders.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get order"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *handlers) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status order.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.deps.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}
