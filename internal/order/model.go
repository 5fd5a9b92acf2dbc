package order

import (
	"context"
	"time"

	"charmforge-be/internal/payment"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// OrderLine is a frozen snapshot of a product at purchase time. It owns
// copies of name, price and customizations so later catalog edits never
// change what a placed order says.
type OrderLine struct {
	ProductID      string            `json:"product_id"`
	Name           string            `json:"name"`
	CategoryID     string            `json:"category_id"`
	UnitPrice      float64           `json:"unit_price"`
	Quantity       int               `json:"quantity"`
	LineTotal      float64           `json:"line_total"`
	Customizations map[string]string `json:"customizations,omitempty"`
	ImageURL       *string           `json:"image_url,omitempty"`
}

// PricingDetails is the authoritative server-side pricing block.
// Invariant: Total == Subtotal - Discount + Shipping + Tax.
type PricingDetails struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	CouponCode *string `json:"coupon_code,omitempty"`
}

type PaymentInfo struct {
	Method            payment.Method `json:"method"`
	Status            payment.Status `json:"status"`
	RazorpayOrderID   *string        `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string        `json:"razorpay_payment_id,omitempty"`
}

type Order struct {
	ID          string         `json:"id"`
	Customer    CustomerInfo   `json:"customer"`
	Lines       []OrderLine    `json:"products"`
	Pricing     PricingDetails `json:"pricing"`
	Payment     PaymentInfo    `json:"payment"`
	Status      Status         `json:"status"`
	Notes       *string        `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ConfirmedAt *time.Time     `json:"confirmed_at,omitempty"`
}

// LineInput is a client-submitted order line reference. It deliberately
// has no price fields: pricing is always re-derived from the trusted
// product record.
type LineInput struct {
	ProductID      string            `json:"product_id"`
	Customizations map[string]string `json:"customizations"`
	Quantity       int               `json:"quantity"`
}

type CreateInput struct {
	Customer      CustomerInfo   `json:"customer"`
	Lines         []LineInput    `json:"products"`
	CouponCode    *string        `json:"coupon_code,omitempty"`
	PaymentMethod payment.Method `json:"payment_method"`
	Notes         *string        `json:"notes,omitempty"`
}

type ListFilter struct {
	Status *Status
	Limit  int32
	Page   int32
}

// Notifier receives a fire-and-forget summary of a freshly placed order.
// Implementations must never block order creation on failure.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *Order)
}
