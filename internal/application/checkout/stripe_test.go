package checkout

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestCreateSession_FormEncoding(t *testing.T) {
	var captured *http.Request
	var capturedForm url.Values

	client := &StripeClient{
		SecretKey: "sk_test_123",
		Client: &http.Client{
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				captured = r
				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				capturedForm, err = url.ParseQuery(string(raw))
				require.NoError(t, err)
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(`{"url":"https://checkout.stripe.com/c/pay/cs_test"}`)),
				}, nil
			}),
		},
	}

	sessionURL, err := client.CreateSession(context.Background(), SessionInput{
		AmountCents: 4550,
		RentalID:    "9",
		SuccessURL:  "http://localhost:3001/RentConfirmation?rental_id=9",
		CancelURL:   "http://localhost:3001/RentFailed?rental_id=9",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test", sessionURL)

	assert.Equal(t, "Bearer sk_test_123", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", captured.Header.Get("Content-Type"))

	assert.Equal(t, "payment", capturedForm.Get("mode"))
	assert.Equal(t, "cad", capturedForm.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Reservation ID: 9", capturedForm.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "4550", capturedForm.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "1", capturedForm.Get("line_items[0][quantity]"))
}

func TestCreateSession_GatewayError(t *testing.T) {
	client := &StripeClient{
		SecretKey: "sk_test_123",
		Client: &http.Client{
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: 401,
					Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"Invalid API Key"}}`)),
				}, nil
			}),
		},
	}

	_, err := client.CreateSession(context.Background(), SessionInput{AmountCents: 100, RentalID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
