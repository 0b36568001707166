package repository

import (
	"context"
	"fmt"
	"time"

	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
// Cart items, the timeline and the shipping address are stored as jsonb and
// always written together with the status so a transition is one atomic row
// update.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id, user_id, user_name, items, subtotal, shipping_cost, cod_fee, discount,
	total, status, timeline, tracking_number, courier, shipping_address, payment_method,
	payment_status, return_reason, cancellation_reason, coupon_code, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.UserName, &o.Items, &o.Subtotal, &o.ShippingCost,
		&o.CODFee, &o.Discount, &o.Total, &o.Status, &o.Timeline,
		&o.TrackingNumber, &o.Courier, &o.ShippingAddress, &o.PaymentMethod,
		&o.PaymentStatus, &o.ReturnReason, &o.CancellationReason, &o.CouponCode,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *orderRepository) collect(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, user_name, items, subtotal, shipping_cost, cod_fee,
			discount, total, status, timeline, tracking_number, courier, shipping_address,
			payment_method, payment_status, return_reason, cancellation_reason, coupon_code,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.UserID, order.UserName, order.Items, order.Subtotal,
		order.ShippingCost, order.CODFee, order.Discount, order.Total, order.Status,
		order.Timeline, order.TrackingNumber, order.Courier, order.ShippingAddress,
		order.PaymentMethod, order.PaymentStatus, order.ReturnReason,
		order.CancellationReason, order.CouponCode, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, orderColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query orders by user")
		return nil, fmt.Errorf("failed to query orders by user: %w", err)
	}

	return r.collect(rows)
}

// ListAll retrieves all orders, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC`, orderColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collect(rows)
}

// ListStale retrieves orders in any of the given statuses created at or
// before the cutoff, oldest first.
func (r *orderRepository) ListStale(ctx context.Context, statuses []model.OrderStatus, cutoff time.Time) ([]model.Order, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE status = ANY($1) AND created_at <= $2
		ORDER BY created_at
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, raw, cutoff)
	if err != nil {
		r.logger.Error().Err(err).Time("cutoff", cutoff).Msg("failed to query stale orders")
		return nil, fmt.Errorf("failed to query stale orders: %w", err)
	}

	return r.collect(rows)
}

// ListSince retrieves orders created at or after the cutoff.
func (r *orderRepository) ListSince(ctx context.Context, cutoff time.Time) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE created_at >= $1
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		r.logger.Error().Err(err).Time("cutoff", cutoff).Msg("failed to query recent orders")
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}

	return r.collect(rows)
}

// UpdateStatus persists a transitioned order. The WHERE clause pins the
// expected pre-transition status: if a concurrent writer (another admin, or
// a second sweep run) already moved the order, zero rows match and the
// caller learns the update did not apply.
func (r *orderRepository) UpdateStatus(ctx context.Context, order *model.Order, expected model.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, timeline = $4, tracking_number = $5, courier = $6,
			return_reason = $7, cancellation_reason = $8, payment_status = $9, updated_at = $10
		WHERE id = $1 AND status = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID, expected, order.Status, order.Timeline, order.TrackingNumber,
		order.Courier, order.ReturnReason, order.CancellationReason,
		order.PaymentStatus, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("status", string(order.Status)).
			Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("expected", string(expected)).
			Str("target", string(order.Status)).
			Msg("order status changed concurrently, update skipped")
		return false, nil
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order status updated")

	return true, nil
}
