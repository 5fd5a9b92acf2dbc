package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"charmforge-be/internal/logger"
	"charmforge-be/internal/order"

	"go.uber.org/zap"
)

// Discord posts an order summary to a Discord webhook for human review.
// Every failure path ends in a log line; nothing propagates back into
// order creation.
type Discord struct {
	webhookURL string
	httpClient *http.Client
}

func NewDiscord(webhookURL string) *Discord {
	if webhookURL == "" {
		logger.L().Warn("Discord webhook URL is empty, notifications disabled")
	}

	return &Discord{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embed struct {
	Title  string       `json:"title"`
	Color  int          `json:"color"`
	Fields []embedField `json:"fields"`
}

type webhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds"`
}

func (d *Discord) OrderPlaced(ctx context.Context, o *order.Order) {
	if d.webhookURL == "" {
		return
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "notify"),
		zap.String("order_id", o.ID),
	)

	msg := webhookMessage{
		Embeds: []embed{{
			Title: "New order placed",
			Color: 0x2ecc71,
			Fields: []embedField{
				{Name: "Order", Value: o.ID, Inline: true},
				{Name: "Customer", Value: o.Customer.Name, Inline: true},
				{Name: "Payment", Value: string(o.Payment.Method), Inline: true},
				{Name: "Items", Value: summarizeLines(o.Lines)},
				{Name: "Total", Value: fmt.Sprintf("₹%.2f", o.Pricing.Total), Inline: true},
			},
		}},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to marshal notification", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		log.Error("failed to build notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		log.Error("failed to deliver notification", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Error("Discord rejected notification", zap.Int("status", resp.StatusCode))
		return
	}

	log.Info("order notification sent")
}

func summarizeLines(lines []order.OrderLine) string {
	if len(lines) == 0 {
		return "—"
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%dx %s (₹%.2f)", l.Quantity, l.Name, l.LineTotal)
	}
	return b.String()
}
