package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (id, user_id, address, amount, payment_method, paid, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text, user_id::text, address, amount, payment_method, paid, status, placed_at
`
	status := o.Status
	if status == "" {
		status = domain.StatusOrderPlaced
	}
	var out domain.Order
	err = tx.QueryRow(ctx, q, uuid.NewString(), o.UserID, o.Address, o.Amount, string(o.PaymentMethod), o.Paid, status).Scan(
		&out.ID, &out.UserID, &out.Address, &out.Amount, &out.PaymentMethod, &out.Paid, &out.Status, &out.PlacedAt,
	)
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	for i, item := range o.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, ordinal, name, price, quantity, size)
VALUES ($1, $2, $3, $4, $5, $6)
`, out.ID, i, item.Name, item.Price, item.Quantity, item.Size); err != nil {
			r.logger.Printf("order repo: create item order_id=%s error=%v", out.ID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	out.Items = o.Items
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, address, amount, payment_method, paid, status, placed_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.UserID, &o.Address, &o.Amount, &o.PaymentMethod, &o.Paid, &o.Status, &o.PlacedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, address, amount, payment_method, paid, status, placed_at
FROM orders
ORDER BY placed_at DESC
`
	return r.listOrders(ctx, q)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, address, amount, payment_method, paid, status, placed_at
FROM orders
WHERE user_id = $1
ORDER BY placed_at DESC
`
	return r.listOrders(ctx, q, userID)
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET paid = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: mark paid id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Printf("order repo: set status id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Address, &o.Amount, &o.PaymentMethod, &o.Paid, &o.Status, &o.PlacedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT order_id::text, name, price, quantity, size
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, ordinal
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		r.logger.Printf("order repo: load items error=%v", err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.Name, &item.Price, &item.Quantity, &item.Size); err != nil {
			return nil, err
		}
		out[orderID] = append(out[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
