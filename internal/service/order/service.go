// Package order owns the order ledger: converting carts into durable orders
// and advancing payment and fulfillment state, including the asynchronous
// gateway verification callbacks.
package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront-api/internal/domain"
	"storefront-api/internal/payment"
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	MarkPaid(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ClearCart(ctx context.Context, userID string) error
}

// Service coordinates order creation, payment verification and fulfillment
// status. Gateway routing happens here, on payment method, behind the two
// gateway capabilities.
type Service struct {
	orders  orderRepo
	users   userRepo
	session payment.SessionGateway
	intent  payment.IntentGateway

	deliveryFee int64
	currency    string
	logger      *log.Logger
}

func New(orders orderRepo, users userRepo, session payment.SessionGateway, intent payment.IntentGateway, deliveryFee int64, currency string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:      orders,
		users:       users,
		session:     session,
		intent:      intent,
		deliveryFee: deliveryFee,
		currency:    currency,
		logger:      logger,
	}
}

type ItemInput struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

type PlaceInput struct {
	Items   []ItemInput    `json:"items"`
	Amount  int64          `json:"amount"`
	Address domain.Address `json:"address"`
}

func validatePlace(in PlaceInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: items required", domain.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.Name == "" || item.Quantity <= 0 || item.Price < 0 {
			return fmt.Errorf("%w: malformed line item", domain.ErrInvalidInput)
		}
	}
	return nil
}

func buildOrder(userID string, in PlaceInput, method domain.PaymentMethod) domain.Order {
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, domain.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
		})
	}
	return domain.Order{
		UserID:        userID,
		Items:         items,
		Address:       in.Address,
		Amount:        in.Amount,
		PaymentMethod: method,
		Paid:          false,
		Status:        domain.StatusOrderPlaced,
	}
}

// PlaceCOD persists a cash-on-delivery order and clears the user's cart.
// The order is written before the cart is touched: a crash in between
// leaves a stray order, never a lost one.
func (s *Service) PlaceCOD(ctx context.Context, userID string, in PlaceInput) (*domain.Order, error) {
	if err := validatePlace(in); err != nil {
		return nil, err
	}
	created, err := s.orders.Create(ctx, buildOrder(userID, in, domain.PaymentCOD))
	if err != nil {
		return nil, err
	}
	if err := s.users.ClearCart(ctx, userID); err != nil {
		s.logger.Printf("order service: clear cart after COD order=%s error=%v", created.ID, err)
		return nil, err
	}
	return created, nil
}

// PlaceCheckout persists an unpaid order, opens a checkout session whose
// success/cancel targets embed the order ID, and returns the redirect URL.
// The cart is cleared only after the verification callback reports success.
func (s *Service) PlaceCheckout(ctx context.Context, userID string, in PlaceInput, origin string) (string, error) {
	if err := validatePlace(in); err != nil {
		return "", err
	}
	if origin == "" {
		return "", fmt.Errorf("%w: origin required", domain.ErrInvalidInput)
	}

	created, err := s.orders.Create(ctx, buildOrder(userID, in, domain.PaymentCheckout))
	if err != nil {
		return "", err
	}

	lines := make([]payment.LineItem, 0, len(in.Items)+1)
	for _, item := range in.Items {
		lines = append(lines, payment.LineItem{
			Name:       item.Name,
			UnitAmount: item.Price * 100,
			Quantity:   item.Quantity,
		})
	}
	lines = append(lines, payment.LineItem{
		Name:       "Delivery Charges",
		UnitAmount: s.deliveryFee * 100,
		Quantity:   1,
	})

	successURL := fmt.Sprintf("%s/verify?success=true&orderId=%s", origin, created.ID)
	cancelURL := fmt.Sprintf("%s/verify?success=false&orderId=%s", origin, created.ID)

	sessionURL, err := s.session.CreateSession(ctx, lines, successURL, cancelURL)
	if err != nil {
		// The unpaid order stays behind; it is safe to retry or to roll
		// back through the failed-verification path.
		s.logger.Printf("order service: create session order=%s error=%v", created.ID, err)
		return "", err
	}
	return sessionURL, nil
}

// VerifyCheckout reconciles the session-redirect result. Success marks the
// order paid and clears the cart; failure rolls back an order whose payment
// never completed. Only unpaid checkout orders may be rolled back: paid is
// terminal, so a cancel callback arriving after a successful verification is
// a no-op. Both directions tolerate duplicate invocations.
func (s *Service) VerifyCheckout(ctx context.Context, userID, orderID string, success bool) error {
	if orderID == "" {
		return fmt.Errorf("%w: orderId required", domain.ErrInvalidInput)
	}

	existing, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Already rolled back (or finalized and later removed); a
			// duplicate callback is not an error.
			return nil
		}
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotFound
	}
	if existing.PaymentMethod != domain.PaymentCheckout {
		return fmt.Errorf("%w: order was not placed through checkout", domain.ErrInvalidInput)
	}

	if !success {
		if existing.Paid {
			return nil
		}
		if err := s.orders.Delete(ctx, orderID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	}

	if err := s.orders.MarkPaid(ctx, orderID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return s.users.ClearCart(ctx, userID)
}

// IntentResult is returned from PlaceIntent: the external intent plus the
// display details the gateway's client-side flow needs.
type IntentResult struct {
	Intent    *payment.Intent `json:"order"`
	UserName  string          `json:"name"`
	UserEmail string          `json:"email"`
}

// PlaceIntent persists an unpaid order and creates an external payment
// intent sized in minor units, with the order ID as receipt reference.
func (s *Service) PlaceIntent(ctx context.Context, userID string, in PlaceInput) (*IntentResult, error) {
	if err := validatePlace(in); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Create(ctx, buildOrder(userID, in, domain.PaymentIntent))
	if err != nil {
		return nil, err
	}

	intent, err := s.intent.CreateIntent(ctx, in.Amount*100, s.currency, created.ID)
	if err != nil {
		// Order stays unpaid; the caller may retry or abandon it.
		s.logger.Printf("order service: create intent order=%s error=%v", created.ID, err)
		return nil, err
	}

	return &IntentResult{
		Intent:    intent,
		UserName:  user.Name,
		UserEmail: user.Email,
	}, nil
}

// VerifyIntent looks up the external intent and finalizes the local order
// when it reports paid. A failed lookup surfaces as a gateway error,
// distinct from a completed lookup that reports non-payment.
func (s *Service) VerifyIntent(ctx context.Context, userID, intentID string) (bool, error) {
	if intentID == "" {
		return false, fmt.Errorf("%w: intentId required", domain.ErrInvalidInput)
	}

	intent, err := s.intent.FetchIntent(ctx, intentID)
	if err != nil {
		return false, err
	}
	if intent.Status != payment.IntentStatusPaid {
		return false, nil
	}

	existing, err := s.orders.GetByID(ctx, intent.Receipt)
	if err != nil {
		return false, err
	}
	if existing.UserID != userID {
		return false, domain.ErrNotFound
	}

	if err := s.orders.MarkPaid(ctx, existing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	if err := s.users.ClearCart(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}

// ListAll returns every order; administrator only.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// ListByUser returns the given user's orders.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus overwrites an order's fulfillment status; the value must be
// one of the known progression statuses.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" {
		return fmt.Errorf("%w: orderId required", domain.ErrInvalidInput)
	}
	if !domain.KnownStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.orders.SetStatus(ctx, orderID, status)
}
