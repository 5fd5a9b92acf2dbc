package payment

// GatewayOrder is the provider-side order a checkout session attaches to.
// Amount is in the smallest currency unit (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Method string

const (
	MethodRazorpay Method = "razorpay"
	MethodCOD      Method = "cod"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)
