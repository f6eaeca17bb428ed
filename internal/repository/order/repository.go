package order

import (
	"context"

	"storefront-api/internal/domain"
)

type Repository interface {
	// Create persists the order and its items in one transaction and
	// returns the stored order with its identifier and timestamp set.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// MarkPaid sets the payment flag. Marking an already-paid order is a
	// no-op success so verification callbacks can be retried.
	MarkPaid(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
