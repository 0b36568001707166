// Package automation runs the periodic back-office sweep: auto-shipping
// stale orders, low-stock checks, restock suggestions and sales report
// archival.
package automation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anandam/internal/config"
	"anandam/internal/lifecycle"
	"anandam/internal/model"
	"anandam/internal/pricing"
	"anandam/internal/report"
	"anandam/internal/repository"
	"anandam/internal/service"

	"github.com/rs/zerolog"
)

// actorID used for audit entries written by the sweep.
const sweepActor = "automation"

// autoShipPath lists the remaining happy-path hops to Shipped from each
// sweepable status. The sweep walks orders through every hop so the
// transition table is honoured rather than bypassed.
var autoShipPath = map[model.OrderStatus][]model.OrderStatus{
	model.StatusPending:   {model.StatusConfirmed, model.StatusPacked, model.StatusShipped},
	model.StatusConfirmed: {model.StatusPacked, model.StatusShipped},
}

// Engine is the periodic sweep runner.
type Engine struct {
	cfg         config.AutomationConfig
	orders      service.OrderService
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	archiver    report.Archiver // nil when report archival is disabled
	logger      zerolog.Logger

	stop chan struct{}
	done chan struct{}
}

// New creates a new automation engine.
func New(
	cfg config.AutomationConfig,
	orders service.OrderService,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	archiver report.Archiver,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		cfg:         cfg,
		orders:      orders,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		archiver:    archiver,
		logger:      logger.With().Str("component", "automation").Logger(),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately.
func (e *Engine) Start(ctx context.Context) {
	interval := time.Duration(e.cfg.IntervalMinutes) * time.Minute

	e.logger.Info().
		Dur("interval", interval).
		Int("auto_ship_after_days", e.cfg.AutoShipAfterDays).
		Msg("automation engine started")

	go func() {
		defer close(e.done)

		e.RunOnce(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.RunOnce(ctx)
			case <-e.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish.
func (e *Engine) Stop() {
	close(e.stop)
	<-e.done
	e.logger.Info().Msg("automation engine stopped")
}

// RunOnce executes a single sweep. Safe to call concurrently with a running
// loop: every order write goes through the guarded transition path, so a
// duplicate sweep skips orders the first one already moved.
func (e *Engine) RunOnce(ctx context.Context) {
	start := time.Now()

	shipped := e.autoShip(ctx)
	low := e.checkLowStock(ctx)
	suggestions := e.suggestRestock(ctx)
	e.archiveSalesReport(ctx)

	e.logger.Info().
		Int("auto_shipped", shipped).
		Int("low_stock", low).
		Int("restock_suggestions", suggestions).
		Dur("duration", time.Since(start)).
		Msg("sweep completed")
}

// autoShip walks orders stuck in Pending or Confirmed past the cutoff
// through the normal transition contract to Shipped.
func (e *Engine) autoShip(ctx context.Context) int {
	cutoff := time.Now().AddDate(0, 0, -e.cfg.AutoShipAfterDays)

	stale, err := e.orderRepo.ListStale(ctx,
		[]model.OrderStatus{model.StatusPending, model.StatusConfirmed}, cutoff)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to list stale orders")
		return 0
	}

	shipped := 0
	for _, o := range stale {
		if err := e.shipOrder(ctx, &o); err != nil {
			e.logger.Warn().
				Err(err).
				Str("order_id", o.ID.String()).
				Msg("auto-ship skipped order")
			continue
		}
		shipped++
	}

	return shipped
}

// shipOrder advances one order hop by hop to Shipped.
func (e *Engine) shipOrder(ctx context.Context, o *model.Order) error {
	path, ok := autoShipPath[o.Status]
	if !ok {
		return fmt.Errorf("order is no longer sweepable in status %s", o.Status)
	}

	tracking := "AUTO-" + strings.ToUpper(strings.ReplaceAll(o.ID.String(), "-", "")[:10])
	note := fmt.Sprintf("Auto-shipped after %d days", e.cfg.AutoShipAfterDays)

	for _, target := range path {
		req := model.TransitionRequest{Status: string(target)}
		if target == model.StatusShipped {
			req.TrackingNumber = tracking
			req.Courier = e.cfg.AutoShipCourier
			req.Note = note
		}

		if _, err := e.orders.Transition(ctx, o.ID, req, lifecycle.ActorAdmin, sweepActor, "Automation"); err != nil {
			return err
		}
	}

	e.logger.Info().
		Str("order_id", o.ID.String()).
		Str("tracking_number", tracking).
		Msg("order auto-shipped")

	return nil
}

// checkLowStock logs products at or below the threshold.
func (e *Engine) checkLowStock(ctx context.Context) int {
	low, err := e.productRepo.ListLowStock(ctx, e.cfg.LowStockThreshold)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to list low stock products")
		return 0
	}

	for _, p := range low {
		e.logger.Warn().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Int("stock", p.Stock).
			Msg("product below low-stock threshold")
	}

	return len(low)
}

// suggestRestock computes advisory reorder quantities from recent sales.
// Suggestions are logged, never applied to stock.
func (e *Engine) suggestRestock(ctx context.Context) int {
	cutoff := time.Now().AddDate(0, 0, -e.cfg.RestockLookback)

	orders, err := e.orderRepo.ListSince(ctx, cutoff)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to list recent orders")
		return 0
	}

	sold := make(map[string]int)
	for _, o := range orders {
		if o.Status == model.StatusCancelled {
			continue
		}
		for _, item := range o.Items {
			sold[item.ProductID] += item.Quantity
		}
	}
	if len(sold) == 0 {
		return 0
	}

	ids := make([]string, 0, len(sold))
	for id := range sold {
		ids = append(ids, id)
	}

	products, err := e.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to load products for restock advice")
		return 0
	}

	suggestions := 0
	for _, p := range products {
		advice := pricing.Restock(sold[p.ID], e.cfg.RestockLookback, e.cfg.RestockLeadTime, p.Stock)
		if advice.SuggestedReorder == 0 {
			continue
		}
		suggestions++
		e.logger.Info().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Float64("avg_daily_sales", advice.AvgDailySales).
			Int("current_stock", p.Stock).
			Int("suggested_reorder", advice.SuggestedReorder).
			Msg("restock suggested")
	}

	return suggestions
}

// archiveSalesReport builds a sales snapshot for the report window and
// uploads it. Best effort: failures are logged and the sweep continues.
func (e *Engine) archiveSalesReport(ctx context.Context) {
	if e.archiver == nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -e.cfg.ReportWindowDays)

	orders, err := e.orderRepo.ListSince(ctx, cutoff)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to list orders for sales report")
		return
	}

	r := &report.SalesReport{
		GeneratedAt: time.Now(),
		WindowDays:  e.cfg.ReportWindowDays,
		OrderCount:  len(orders),
		Rows:        make([]report.SalesRow, 0, len(orders)),
	}
	for _, o := range orders {
		r.TotalRevenue += o.Total
		r.Rows = append(r.Rows, report.SalesRow{
			OrderID:   o.ID.String(),
			Date:      o.CreatedAt,
			User:      o.UserName,
			Total:     o.Total,
			Status:    string(o.Status),
			ItemCount: len(o.Items),
		})
	}

	if err := e.archiver.Archive(ctx, r); err != nil {
		e.logger.Error().Err(err).Msg("failed to archive sales report")
	}
}
