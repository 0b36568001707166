package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anandam/internal/automation"
	"anandam/internal/config"
	"anandam/internal/database"
	"anandam/internal/handler"
	"anandam/internal/model"
	"anandam/internal/report"
	"anandam/internal/repository"
	"anandam/internal/router"
	"anandam/internal/service"
	"anandam/internal/stylist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting anandam API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	bespokeRepo := repository.NewBespokeRepository(pool, logger)
	settingsRepo := repository.NewSettingsRepository(pool, logger)
	auditRepo := repository.NewAuditRepository(pool, logger)
	marketingRepo := repository.NewMarketingRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	paymentDefaults := model.PaymentSettings{
		CODEnabled:            cfg.Payment.CODEnabled,
		CODFee:                cfg.Payment.CODFee,
		PrepaidDiscount:       cfg.Payment.PrepaidDiscount,
		ShippingCharge:        cfg.Payment.ShippingCharge,
		FreeShippingThreshold: cfg.Payment.FreeShippingThreshold,
	}

	// Initialize services; the audit service comes first because the others
	// record into it.
	auditService := service.NewAuditService(auditRepo, logger)
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, couponRepo, settingsRepo, auditService, paymentDefaults, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	bespokeService := service.NewBespokeService(bespokeRepo, productRepo, auditService, logger)
	settingsService := service.NewSettingsService(settingsRepo, auditService, paymentDefaults, logger)
	marketingService := service.NewMarketingService(marketingRepo, logger)
	userService := service.NewUserService(userRepo, auditService, logger)

	// Initialize the AI stylist with a graceful fallback when disabled or
	// misconfigured.
	var generator stylist.Generator
	if cfg.Stylist.Enabled {
		generator, err = stylist.NewGeminiGenerator(ctx, cfg.Stylist)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise stylist generator, serving fallback copy only")
			generator = nil
		}
	} else {
		logger.Info().Msg("AI stylist disabled, serving fallback copy only")
	}
	stylistService := stylist.NewService(generator, logger)

	// Initialize the sales report archiver
	var archiver report.Archiver
	if cfg.S3.Enabled {
		archiver, err = report.NewS3Archiver(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 archiver, sales reports will not be uploaded")
			archiver = nil
		}
	} else {
		logger.Info().Msg("sales report archival disabled (S3 disabled)")
	}

	// Start the back-office automation sweep
	if cfg.Automation.Enabled {
		engine := automation.New(cfg.Automation, orderService, orderRepo, productRepo, archiver, logger)
		engine.Start(ctx)
		defer engine.Stop()
	} else {
		logger.Info().Msg("automation sweep disabled")
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, auditService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	couponHandler := handler.NewCouponHandler(couponService, auditService, logger)
	bespokeHandler := handler.NewBespokeHandler(bespokeService, logger)
	adminHandler := handler.NewAdminHandler(settingsService, marketingService, auditService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	stylistHandler := handler.NewStylistHandler(stylistService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		orderHandler,
		couponHandler,
		bespokeHandler,
		adminHandler,
		userHandler,
		stylistHandler,
		cfg.Auth.APIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
