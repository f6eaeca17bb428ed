package user

import (
	"context"

	"storefront-api/internal/domain"
)

type CreateInput struct {
	Name         string
	Email        string
	PasswordHash string
	Role         domain.Role
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetCart(ctx context.Context, userID string) (domain.CartData, error)
	// MutateCart applies fn to the stored cart under a row lock, so two
	// concurrent mutations for the same user serialize instead of losing
	// one update. It returns the cart as persisted.
	MutateCart(ctx context.Context, userID string, fn func(domain.CartData) (domain.CartData, error)) (domain.CartData, error)
	ClearCart(ctx context.Context, userID string) error
}
