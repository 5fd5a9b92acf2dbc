package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	gw := NewRazorpayGateway("key-id", "key-secret", "whsec").(*razorpayGateway)

	t.Run("Success", func(t *testing.T) {
		respBody := `{
			"id": "order_MhW5u9perQkDlN",
			"amount": 40000,
			"currency": "INR",
			"receipt": "ord-123",
			"status": "created"
		}`

		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "https://api.razorpay.com/v1/orders", req.URL.String())

			user, pass, ok := req.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "key-id", user)
			assert.Equal(t, "key-secret", pass)

			reqBody, _ := io.ReadAll(req.Body)
			assert.Contains(t, string(reqBody), `"amount":40000`)
			assert.Contains(t, string(reqBody), `"currency":"INR"`)

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
			}
		})

		order, err := gw.CreateOrder(context.Background(), "ord-123", 400)
		require.NoError(t, err)
		assert.Equal(t, "order_MhW5u9perQkDlN", order.ID)
		assert.Equal(t, int64(40000), order.Amount)
		assert.Equal(t, "created", order.Status)
	})

	t.Run("APIError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusUnauthorized,
				Body:       io.NopCloser(bytes.NewBufferString(`{"error":{"code":"BAD_REQUEST_ERROR"}}`)),
				Header:     make(http.Header),
			}
		})

		_, err := gw.CreateOrder(context.Background(), "ord-123", 400)
		assert.Error(t, err)
	})

	t.Run("NetworkError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := gw.CreateOrder(context.Background(), "ord-123", 400)
		assert.Error(t, err)
	})
}

func TestRazorpayGateway_VerifyWebhookSignature(t *testing.T) {
	gw := NewRazorpayGateway("key-id", "key-secret", "whsec").(*razorpayGateway)
	body := []byte(`{"event":"payment.captured"}`)

	sign := func(secret string, payload []byte) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(payload)
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("ValidSignature", func(t *testing.T) {
		assert.NoError(t, gw.VerifyWebhookSignature(body, sign("whsec", body)))
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		assert.Error(t, gw.VerifyWebhookSignature(body, sign("other-secret", body)))
	})

	t.Run("TamperedBody", func(t *testing.T) {
		sig := sign("whsec", body)
		assert.Error(t, gw.VerifyWebhookSignature([]byte(`{"event":"payment.failed"}`), sig))
	})

	t.Run("EmptySecretSkipsCheck", func(t *testing.T) {
		open := NewRazorpayGateway("k", "s", "").(*razorpayGateway)
		assert.NoError(t, open.VerifyWebhookSignature(body, "anything"))
	})
}

func TestToPaise(t *testing.T) {
	assert.Equal(t, int64(40000), toPaise(400))
	assert.Equal(t, int64(38050), toPaise(380.5))
	assert.Equal(t, int64(10), toPaise(0.1))
}
