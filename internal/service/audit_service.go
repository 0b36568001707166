package service

import (
	"context"
	"fmt"
	"time"

	"anandam/internal/model"
	"anandam/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// auditService implements AuditService.
type auditService struct {
	repo   repository.AuditRepository
	logger zerolog.Logger
}

// NewAuditService creates a new audit trail service.
func NewAuditService(repo repository.AuditRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("service", "audit").Logger(),
	}
}

// Record appends an audit entry.
func (s *auditService) Record(ctx context.Context, event, actorID, actorName string, metadata map[string]any) error {
	if event == "" {
		return fmt.Errorf("audit event is required")
	}

	entry := &model.AuditLog{
		ID:        uuid.New(),
		Event:     event,
		User:      actorName,
		UserID:    actorID,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return err
	}

	s.logger.Debug().Str("event", event).Str("actor_id", actorID).Msg("audit entry recorded")
	return nil
}

// List retrieves audit entries, newest first.
func (s *auditService) List(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
	entries, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list audit entries")
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
