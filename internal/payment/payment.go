package payment

import "context"

// Gateway abstracts the online payment provider. Orders paid by COD
// never touch it.
type Gateway interface {
	// CreateOrder registers an order with the provider and returns the
	// provider-side order id the client needs to open checkout.
	CreateOrder(ctx context.Context, receiptID string, amount float64) (*GatewayOrder, error)
	// VerifyWebhookSignature checks the signature header of a webhook
	// delivery against the raw body.
	VerifyWebhookSignature(body []byte, signature string) error
}
