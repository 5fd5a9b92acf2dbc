package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"charmforge-be/internal/logger"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com"

type razorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	httpClient    *http.Client
}

func NewRazorpayGateway(keyID, keySecret, webhookSecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}

	return &razorpayGateway{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, receiptID string, amount float64) (*GatewayOrder, error) {
	log := logger.L().With(
		zap.String("receipt_id", receiptID),
		zap.Float64("amount", amount),
	)

	body := map[string]interface{}{
		"amount":   toPaise(amount),
		"currency": "INR",
		"receipt":  receiptID,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal order request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", razorpayBaseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Add("Content-Type", "application/json")

	log.Info("Creating Razorpay order")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Razorpay request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("razorpay error: %s", string(bodyBytes))
	}

	var order GatewayOrder
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		log.Error("Failed decoding Razorpay response", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay order created",
		zap.String("gateway_order_id", order.ID),
		zap.String("status", order.Status),
	)

	return &order, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header value:
// hex-encoded HMAC-SHA256 of the raw body keyed by the webhook secret.
// An empty configured secret skips verification (dev only).
func (g *razorpayGateway) VerifyWebhookSignature(body []byte, signature string) error {
	if g.webhookSecret == "" {
		return nil
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.New("invalid webhook signature")
	}
	return nil
}

// toPaise converts rupees to the integral paise amount Razorpay expects.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
