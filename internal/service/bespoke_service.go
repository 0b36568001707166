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

// bespokeService implements BespokeService.
type bespokeService struct {
	repo        repository.BespokeRepository
	productRepo repository.ProductRepository
	audit       AuditService
	logger      zerolog.Logger
}

// NewBespokeService creates a new bespoke request service.
func NewBespokeService(
	repo repository.BespokeRepository,
	productRepo repository.ProductRepository,
	audit AuditService,
	logger zerolog.Logger,
) BespokeService {
	return &bespokeService{
		repo:        repo,
		productRepo: productRepo,
		audit:       audit,
		logger:      logger.With().Str("service", "bespoke").Logger(),
	}
}

// Create records a new customer tailoring request. The target product must
// exist and allow customization.
func (s *bespokeService) Create(ctx context.Context, req *model.BespokeRequest) error {
	if req == nil {
		return fmt.Errorf("bespoke request is nil")
	}
	if req.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if req.ProductID == "" {
		return fmt.Errorf("product ID is required")
	}
	if req.Unit != model.UnitInches && req.Unit != model.UnitCM {
		return fmt.Errorf("invalid measurement unit: %s", req.Unit)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to load product")
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}
	if !product.IsCustomizable {
		return model.ErrNotCustomizable
	}

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.ProductName = product.Name
	req.Status = model.BespokePending
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return err
	}

	s.logger.Info().
		Str("request_id", req.ID.String()).
		Str("user_id", req.UserID).
		Str("product_id", req.ProductID).
		Msg("bespoke request created")

	return nil
}

// ListAll retrieves all bespoke requests.
func (s *bespokeService) ListAll(ctx context.Context) ([]model.BespokeRequest, error) {
	requests, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list bespoke requests")
		return nil, fmt.Errorf("failed to list bespoke requests: %w", err)
	}
	return requests, nil
}

// ListByUser retrieves a user's bespoke requests.
func (s *bespokeService) ListByUser(ctx context.Context, userID string) ([]model.BespokeRequest, error) {
	requests, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list bespoke requests by user")
		return nil, fmt.Errorf("failed to list bespoke requests: %w", err)
	}
	return requests, nil
}

// Advance moves a request to the given status. Consultations only move
// forward: Pending -> Consulted -> Fulfilled.
func (s *bespokeService) Advance(ctx context.Context, id uuid.UUID, status model.BespokeStatus, actorID, actorName string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to load bespoke request")
		return fmt.Errorf("failed to load bespoke request: %w", err)
	}
	if current == nil {
		return model.ErrBespokeNotFound
	}

	if rank(status) <= rank(current.Status) {
		return model.NewDomainError(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Bespoke request cannot move from %s to %s", current.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, "bespoke.status_change", actorID, actorName, map[string]any{
		"requestId": id.String(),
		"from":      string(current.Status),
		"to":        string(status),
	}); err != nil {
		s.logger.Error().Err(err).Str("request_id", id.String()).Msg("failed to record audit entry")
	}

	s.logger.Info().
		Str("request_id", id.String()).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("bespoke request advanced")

	return nil
}

// rank orders bespoke statuses for the forward-only check.
func rank(s model.BespokeStatus) int {
	switch s {
	case model.BespokePending:
		return 0
	case model.BespokeConsulted:
		return 1
	case model.BespokeFulfilled:
		return 2
	}
	return -1
}
