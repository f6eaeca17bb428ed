package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutClient talks to the session-redirect gateway's form-encoded API.
type CheckoutClient struct {
	baseURL  string
	apiKey   string
	currency string
	client   *http.Client
	logger   *log.Logger
}

func NewCheckoutClient(baseURL, apiKey, currency string, timeout time.Duration, logger *log.Logger) *CheckoutClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CheckoutClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		currency: currency,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type checkoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession opens a hosted checkout session for the given lines and
// returns the redirect URL the shopper should be sent to.
func (c *CheckoutClient) CreateSession(ctx context.Context, lines []LineItem, successURL, cancelURL string) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	for i, line := range lines {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][product_data][name]", line.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(line.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("checkout gateway: create session error=%v", err)
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("checkout gateway: create session status=%d body=%s", resp.StatusCode, body)
		return "", fmt.Errorf("%w: create session status %d", ErrGateway, resp.StatusCode)
	}

	var session checkoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("%w: decode session: %v", ErrGateway, err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("%w: session response missing url", ErrGateway)
	}
	return session.URL, nil
}
