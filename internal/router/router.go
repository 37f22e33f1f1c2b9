package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rollstock/internal/config"
	"rollstock/internal/handler"
	"rollstock/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	customerH *handler.CustomerHandler,
	productH *handler.ProductHandler,
	invoiceH *handler.InvoiceHandler,
	outstandingH *handler.OutstandingHandler,
	analyticsH *handler.AnalyticsHandler,
	ledgerH *handler.LedgerHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Customer routes
	customers := v1.Group("/customers")
	customers.POST("", customerH.Create)
	customers.GET("", customerH.List)
	customers.GET("/:id", customerH.GetByID)
	customers.PUT("/:id", customerH.Update)
	customers.DELETE("/:id", customerH.Delete)
	customers.GET("/:id/pending-invoices", outstandingH.PendingInvoices)
	customers.GET("/:id/opening-outstandings", outstandingH.ListByCustomer)
	customers.GET("/:id/ledger", ledgerH.Get)
	customers.GET("/:id/ledger/export", ledgerH.Export)

	// Product routes
	products := v1.Group("/products")
	products.POST("", productH.Create)
	products.GET("", productH.List)
	products.GET("/:id", productH.GetByID)
	products.PUT("/:id", productH.Update)
	products.DELETE("/:id", productH.Delete)

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.POST("/:id/payments", invoiceH.AllocatePayment)
	invoices.GET("/:id/payments", invoiceH.ListPayments)
	invoices.POST("/:id/archive", invoiceH.Archive)

	// Opening outstanding routes
	outstandings := v1.Group("/opening-outstandings")
	outstandings.POST("", outstandingH.Create)
	outstandings.GET("", outstandingH.List)
	outstandings.GET("/:id", outstandingH.GetByID)
	outstandings.PUT("/:id", outstandingH.UpdateAdjusted)

	// Analytics routes
	analytics := v1.Group("/analytics")
	analytics.GET("/sales/width-distribution", analyticsH.WidthDistribution)
	analytics.POST("/sales/width-distribution", analyticsH.WidthDistributionMulti)
	analytics.GET("/sales/products", analyticsH.ProductSales)
	analytics.GET("/sales/trends", analyticsH.SalesTrends)
	analytics.GET("/customers", analyticsH.CustomerAnalytics)

	return r
}
