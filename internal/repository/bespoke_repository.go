package repository

import (
	"context"
	"fmt"

	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bespokeRepository implements the BespokeRepository interface using PostgreSQL.
type bespokeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBespokeRepository creates a new PostgreSQL-backed bespoke request repository.
func NewBespokeRepository(pool *pgxpool.Pool, logger zerolog.Logger) BespokeRepository {
	return &bespokeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bespoke").Logger(),
	}
}

const bespokeColumns = `id, user_id, user_name, user_email, product_id, product_name,
	measurements, unit, notes, status, created_at`

func scanBespoke(row pgx.Row, b *model.BespokeRequest) error {
	return row.Scan(
		&b.ID, &b.UserID, &b.UserName, &b.UserEmail, &b.ProductID, &b.ProductName,
		&b.Measurements, &b.Unit, &b.Notes, &b.Status, &b.CreatedAt,
	)
}

func (r *bespokeRepository) collect(rows pgx.Rows) ([]model.BespokeRequest, error) {
	defer rows.Close()

	var requests []model.BespokeRequest
	for rows.Next() {
		var b model.BespokeRequest
		if err := scanBespoke(rows, &b); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bespoke request row")
			return nil, fmt.Errorf("failed to scan bespoke request: %w", err)
		}
		requests = append(requests, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating bespoke request rows")
		return nil, fmt.Errorf("error iterating bespoke requests: %w", err)
	}

	return requests, nil
}

// Create inserts a new bespoke request.
func (r *bespokeRepository) Create(ctx context.Context, req *model.BespokeRequest) error {
	query := `
		INSERT INTO bespoke_requests (id, user_id, user_name, user_email, product_id,
			product_name, measurements, unit, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID, req.UserID, req.UserName, req.UserEmail, req.ProductID,
		req.ProductName, req.Measurements, req.Unit, req.Notes, req.Status, req.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("request_id", req.ID.String()).Msg("failed to create bespoke request")
		return fmt.Errorf("failed to create bespoke request: %w", err)
	}

	r.logger.Debug().Str("request_id", req.ID.String()).Msg("bespoke request created")
	return nil
}

// GetByID retrieves a bespoke request.
func (r *bespokeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.BespokeRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM bespoke_requests WHERE id = $1`, bespokeColumns)

	var b model.BespokeRequest
	err := scanBespoke(r.pool.QueryRow(ctx, query, id), &b)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to query bespoke request")
		return nil, fmt.Errorf("failed to query bespoke request: %w", err)
	}

	return &b, nil
}

// ListAll retrieves all bespoke requests, newest first.
func (r *bespokeRepository) ListAll(ctx context.Context) ([]model.BespokeRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM bespoke_requests ORDER BY created_at DESC`, bespokeColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query bespoke requests")
		return nil, fmt.Errorf("failed to query bespoke requests: %w", err)
	}

	return r.collect(rows)
}

// ListByUser retrieves a user's bespoke requests, newest first.
func (r *bespokeRepository) ListByUser(ctx context.Context, userID string) ([]model.BespokeRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM bespoke_requests WHERE user_id = $1 ORDER BY created_at DESC`, bespokeColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query bespoke requests by user")
		return nil, fmt.Errorf("failed to query bespoke requests by user: %w", err)
	}

	return r.collect(rows)
}

// UpdateStatus advances a request's status.
func (r *bespokeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BespokeStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bespoke_requests SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to update bespoke status")
		return fmt.Errorf("failed to update bespoke status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBespokeNotFound
	}

	return nil
}
