package domain

import "time"

// PaymentMethod selects the payment path chosen at checkout.
type PaymentMethod string

const (
	// PaymentCOD settles on delivery; no gateway is involved.
	PaymentCOD PaymentMethod = "COD"
	// PaymentCheckout is the session-redirect gateway: the shopper is sent
	// to an external checkout page and the result comes back on a redirect.
	PaymentCheckout PaymentMethod = "Checkout"
	// PaymentIntent is the order-intent gateway: an external intent is
	// created up front and its status is looked up during verification.
	PaymentIntent PaymentMethod = "IntentPay"
)

// Fulfillment progression. UpdateStatus only accepts these values.
const (
	StatusOrderPlaced    = "Order Placed"
	StatusPacking        = "Packing"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

var fulfillmentStatuses = map[string]struct{}{
	StatusOrderPlaced:    {},
	StatusPacking:        {},
	StatusShipped:        {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
}

// KnownStatus reports whether s is one of the fulfillment progression values.
func KnownStatus(s string) bool {
	_, ok := fulfillmentStatuses[s]
	return ok
}

// OrderItem is a snapshotted cart line. Price is the unit price in whole
// currency units, frozen at order creation.
type OrderItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// Address is the shipping address captured at checkout.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// Order is an immutable snapshot of a cart plus payment and fulfillment
// tracking. Items, address and amount never change after creation; only
// Paid and Status do.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Items         []OrderItem   `json:"items"`
	Address       Address       `json:"address"`
	Amount        int64         `json:"amount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Paid          bool          `json:"payment"`
	Status        string        `json:"status"`
	PlacedAt      time.Time     `json:"placedAt"`
}
