package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "rollstock/docs"
	"rollstock/internal/config"
	"rollstock/internal/handler"
	"rollstock/internal/logger"
	"rollstock/internal/repository/postgres"
	"rollstock/internal/router"
	"rollstock/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// .env is optional; real deployments set environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	customerRepo := postgres.NewCustomerRepo(db)
	productRepo := postgres.NewProductRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	archiveRepo := postgres.NewInvoiceArchiveRepo(db)
	outstandingRepo := postgres.NewOutstandingRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	salesRepo := postgres.NewSalesRepo(db)

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo)
	productSvc := service.NewProductService(productRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, archiveRepo, paymentRepo, customerRepo)
	outstandingSvc := service.NewOutstandingService(outstandingRepo, invoiceSvc, invoiceRepo, customerRepo)
	analyticsSvc := service.NewAnalyticsService(salesRepo)
	ledgerSvc := service.NewLedgerService(customerRepo, invoiceRepo, archiveRepo, paymentRepo, outstandingRepo)

	// Initialize handlers
	customerH := handler.NewCustomerHandler(customerSvc)
	productH := handler.NewProductHandler(productSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	outstandingH := handler.NewOutstandingHandler(outstandingSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, customerH, productH, invoiceH, outstandingH, analyticsH, ledgerH, healthH)

	log.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
