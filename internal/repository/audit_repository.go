package repository

import (
	"context"
	"fmt"

	"anandam/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// auditRepository implements the AuditRepository interface using PostgreSQL.
// The table is append-only; there are no update or delete paths.
type auditRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAuditRepository creates a new PostgreSQL-backed audit log repository.
func NewAuditRepository(pool *pgxpool.Pool, logger zerolog.Logger) AuditRepository {
	return &auditRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "audit").Logger(),
	}
}

// Append inserts a new audit entry.
func (r *auditRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, event, user_name, user_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Event, entry.User, entry.UserID, entry.Metadata, entry.Timestamp,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("event", entry.Event).Msg("failed to append audit entry")
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// List retrieves audit entries, newest first.
func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, event, user_name, user_id, metadata, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query audit entries")
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditLog
	for rows.Next() {
		var e model.AuditLog
		if err := rows.Scan(&e.ID, &e.Event, &e.User, &e.UserID, &e.Metadata, &e.Timestamp); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan audit entry row")
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating audit entry rows")
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, nil
}
