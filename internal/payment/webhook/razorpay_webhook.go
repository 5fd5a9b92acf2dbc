package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"charmforge-be/internal/logger"
	"charmforge-be/internal/order"
	"charmforge-be/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventPayload mirrors the slice of Razorpay's webhook envelope we care
// about. Amount is in paise.
type EventPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Amount  int64  `json:"amount"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type Handler struct {
	orders  order.Service
	gateway payment.Gateway
}

func NewHandler(orders order.Service, gateway payment.Gateway) *Handler {
	return &Handler{orders: orders, gateway: gateway}
}

// HandleRazorpay processes payment.captured / payment.failed deliveries.
// Other events are acknowledged and dropped so Razorpay stops retrying.
func (h *Handler) HandleRazorpay(c *gin.Context) {
	log := logger.FromCtx(c.Request.Context())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	sig := c.GetHeader("X-Razorpay-Signature")
	if err := h.gateway.VerifyWebhookSignature(body, sig); err != nil {
		log.Warn("webhook signature rejected", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var event EventPayload
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	entity := event.Payload.Payment.Entity
	log = log.With(
		zap.String("event", event.Event),
		zap.String("gateway_order_id", entity.OrderID),
		zap.String("payment_id", entity.ID),
	)

	ctx := c.Request.Context()

	switch event.Event {
	case "payment.captured":
		amountPaid := float64(entity.Amount) / 100
		err = h.orders.MarkPaid(ctx, entity.OrderID, entity.ID, amountPaid)
	case "payment.failed":
		err = h.orders.MarkFailed(ctx, entity.OrderID)
	default:
		log.Debug("ignoring webhook event")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err != nil {
		log.Error("failed to apply webhook event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	log.Info("webhook event applied")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
