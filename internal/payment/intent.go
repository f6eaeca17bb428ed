package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IntentClient talks to the order-intent gateway's JSON API using key-pair
// basic auth.
type IntentClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
	logger    *log.Logger
}

func NewIntentClient(baseURL, keyID, keySecret string, timeout time.Duration, logger *log.Logger) *IntentClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &IntentClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// CreateIntent creates an external payment intent for amount minor units,
// tagged with the caller's receipt reference.
func (c *IntentClient) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*Intent, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": strings.ToUpper(currency),
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	return c.do(req, "create intent")
}

// FetchIntent looks up the current state of an intent by its gateway ID.
func (c *IntentClient) FetchIntent(ctx context.Context, id string) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	return c.do(req, "fetch intent")
}

func (c *IntentClient) do(req *http.Request, op string) (*Intent, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("intent gateway: %s error=%v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("intent gateway: %s status=%d body=%s", op, resp.StatusCode, body)
		return nil, fmt.Errorf("%w: %s status %d", ErrGateway, op, resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrGateway, op, err)
	}
	return &intent, nil
}
