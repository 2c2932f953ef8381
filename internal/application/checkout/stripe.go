// Package checkout creates hosted payment sessions at the external gateway.
// Payment capture is entirely the gateway's concern; this client only builds
// the redirect URL the frontend sends the renter to.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const stripeSessionsAPI = "https://api.stripe.com/v1/checkout/sessions"

// SessionInput describes one rental payment.
type SessionInput struct {
	AmountCents int64
	RentalID    string
	SuccessURL  string
	CancelURL   string
}

// Creator creates a checkout session and returns its redirect URL. Nil or a
// test double replaces the real client in handler tests.
type Creator interface {
	CreateSession(ctx context.Context, in SessionInput) (string, error)
}

// StripeClient talks to the Stripe Checkout Sessions API over its
// form-encoded HTTP surface.
type StripeClient struct {
	SecretKey string
	Client    *http.Client
}

func (c *StripeClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// CreateSession creates a single-item CAD payment session, same line-item
// shape as the Express create-checkout-session route.
func (c *StripeClient) CreateSession(ctx context.Context, in SessionInput) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", "cad")
	form.Set("line_items[0][price_data][product_data][name]", "Reservation ID: "+in.RentalID)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(in.AmountCents, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", in.SuccessURL)
	form.Set("cancel_url", in.CancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stripeSessionsAPI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("stripe checkout session: status %d: %s", resp.StatusCode, body)
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &session); err != nil {
		return "", err
	}
	return session.URL, nil
}
