package token

import (
	"context"
	"time"
)

// Token is an opaque bearer credential. UserID is nil for administrator
// tokens, which are issued against configured credentials rather than a
// user row.
type Token struct {
	Token     string
	UserID    *string
	Role      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
