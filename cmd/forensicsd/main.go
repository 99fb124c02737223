package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/usecase"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/config"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/messaging"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/postgres"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/infrastructure/validation"
	grpcpresentation "github.com/alanredmond23-bit/LEAD-VALIDATION/internal/presentation/grpc"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/presentation/rest"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/kafka"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/observability"
	pgutil "github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration. Invalid scoring rules abort startup.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "lead-validation",
	})

	logger.Info("starting lead-validation",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics endpoint.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "lead-validation",
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without them", "error", err)
	} else {
		defer meterProvider.Shutdown(context.Background())
	}

	// Database connection and migrations.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgutil.NewPool(dbCtx, cfg.DatabaseURL, pgutil.PoolConfig{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pgutil.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	batchRepo := postgres.NewBatchRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	blacklistRepo := postgres.NewBlacklistRepository(pool)

	var publisher port.EventPublisher = messaging.NoopPublisher{}
	if cfg.KafkaEnabled {
		producer := kafka.NewProducer(kafka.Config{Brokers: cfg.KafkaBrokers})
		defer producer.Close()
		publisher = messaging.NewKafkaPublisher(producer, logger)
	} else {
		logger.Info("kafka disabled, domain events will be dropped")
	}

	// Validation providers. Each channel is optional; a missing channel
	// just leaves its fraud signals unknown.
	validators := usecase.Validators{
		Phone: validation.NewLocalPhoneValidator(cfg.Rules.Geographic.ExpectedCountry),
	}
	emailValidator, err := validation.NewDNSEmailValidator(time.Duration(cfg.DNSTimeoutSecs) * time.Second)
	if err != nil {
		logger.Warn("email validation disabled", "error", err)
	} else {
		validators.Email = emailValidator
	}
	if cfg.IPLookupURL != "" {
		validators.IP = validation.NewHTTPIPValidator(cfg.IPLookupURL, cfg.IPLookupRPS)
	}

	// Wire use cases.
	scoreBatchUC := usecase.NewScoreBatch(
		batchRepo, vendorRepo, blacklistRepo, publisher,
		validators, cfg.Rules, cfg.MaxScoreWorkers, logger,
	)
	getBatchUC := usecase.NewGetBatch(batchRepo)
	getVendorUC := usecase.NewGetVendor(vendorRepo, batchRepo, cfg.Rules.Vendor)
	listVendorsUC := usecase.NewListVendors(vendorRepo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewHandler(scoreBatchUC, getBatchUC, getVendorUC, listVendorsUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger)

	// HTTP server (health checks and metrics).
	healthHandler := rest.NewHealthHandler(pool, logger)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	if metricsHandler != nil {
		httpMux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("lead-validation started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down lead-validation")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lead-validation stopped")
}
