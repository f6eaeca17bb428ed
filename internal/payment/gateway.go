// Package payment holds the adapters for the two external payment gateways.
// Both are modelled as narrow capabilities so the order service routes on
// payment method instead of knowing gateway wire details.
package payment

import (
	"context"
	"errors"
)

// ErrGateway wraps transport-level failures talking to a gateway: timeouts,
// connection errors, or non-success responses. It is distinct from a
// completed lookup that reports the payment as not made.
var ErrGateway = errors.New("payment gateway failure")

// IntentStatusPaid is the only intent status treated as payment success.
const IntentStatusPaid = "paid"

// LineItem is a priced checkout line. UnitAmount is in minor currency units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// SessionGateway is the session-redirect variant: it opens a hosted checkout
// session and the result arrives later on the success/cancel redirect, so
// there is no status lookup on this variant.
type SessionGateway interface {
	CreateSession(ctx context.Context, lines []LineItem, successURL, cancelURL string) (string, error)
}

// Intent is an external payment intent handle.
type Intent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// IntentGateway is the order-intent variant: an intent sized in minor units
// is created with a caller-supplied receipt reference, and its status is
// resolved later with a synchronous lookup.
type IntentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*Intent, error)
	FetchIntent(ctx context.Context, id string) (*Intent, error)
}
