package cart

import (
	"context"
	"fmt"
	"strings"

	"storefront-api/internal/domain"
)

// Service owns per-user cart state. It trusts the user identifier handed to
// it by the auth layer and never verifies credentials itself.
type Service struct {
	users userRepo
}

type userRepo interface {
	GetCart(ctx context.Context, userID string) (domain.CartData, error)
	MutateCart(ctx context.Context, userID string, fn func(domain.CartData) (domain.CartData, error)) (domain.CartData, error)
}

func New(users userRepo) *Service {
	return &Service{users: users}
}

// AddItem increments the quantity at (itemID, size) by one.
func (s *Service) AddItem(ctx context.Context, userID, itemID, size string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(itemID) == "" || strings.TrimSpace(size) == "" {
		return fmt.Errorf("%w: userId, itemId and size required", domain.ErrInvalidInput)
	}
	_, err := s.users.MutateCart(ctx, userID, func(cart domain.CartData) (domain.CartData, error) {
		return cart.Increment(itemID, size), nil
	})
	return err
}

// SetQuantity overwrites the quantity at (itemID, size). Absent entries are
// created; zero removes the entry.
func (s *Service) SetQuantity(ctx context.Context, userID, itemID, size string, quantity int) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(itemID) == "" || strings.TrimSpace(size) == "" {
		return fmt.Errorf("%w: userId, itemId and size required", domain.ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}
	_, err := s.users.MutateCart(ctx, userID, func(cart domain.CartData) (domain.CartData, error) {
		return cart.Set(itemID, size, quantity), nil
	})
	return err
}

// Get returns the user's cart, empty rather than nil when nothing is in it.
func (s *Service) Get(ctx context.Context, userID string) (domain.CartData, error) {
	cart, err := s.users.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.CartData{}
	}
	return cart, nil
}
