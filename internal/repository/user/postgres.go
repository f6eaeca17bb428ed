package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	const q = `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, name, email, password_hash, role, cart_data, created_at
`
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	var u domain.User
	err := r.pool.QueryRow(ctx, q, uuid.NewString(), in.Name, in.Email, in.PasswordHash, string(role)).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Cart, &u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", in.Email, err)
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, name, email, password_hash, role, cart_data, created_at
FROM users
WHERE id = $1
`
	return r.fetchUser(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, name, email, password_hash, role, cart_data, created_at
FROM users
WHERE email = $1
`
	return r.fetchUser(ctx, q, email)
}

func (r *postgresRepo) GetCart(ctx context.Context, userID string) (domain.CartData, error) {
	const q = `SELECT cart_data FROM users WHERE id = $1`
	var cart domain.CartData
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&cart); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get cart user_id=%s error=%v", userID, err)
		return nil, err
	}
	return cart, nil
}

func (r *postgresRepo) MutateCart(ctx context.Context, userID string, fn func(domain.CartData) (domain.CartData, error)) (domain.CartData, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cart domain.CartData
	err = tx.QueryRow(ctx, `SELECT cart_data FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&cart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: lock cart user_id=%s error=%v", userID, err)
		return nil, err
	}

	updated, err := fn(cart)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		updated = domain.CartData{}
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET cart_data = $1 WHERE id = $2`, updated, userID); err != nil {
		r.logger.Printf("user repo: write cart user_id=%s error=%v", userID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) ClearCart(ctx context.Context, userID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET cart_data = '{}'::jsonb WHERE id = $1`, userID)
	if err != nil {
		r.logger.Printf("user repo: clear cart user_id=%s error=%v", userID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchUser(ctx context.Context, q string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Cart, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
