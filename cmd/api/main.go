package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/api/handlers"
	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/internal/config"
	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/internal/infrastructure/email"
	mongoRepo "github.com/garage-platform/garage-api/internal/infrastructure/mongodb"
	"github.com/garage-platform/garage-api/pkg/auth"
	"github.com/garage-platform/garage-api/pkg/cache"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/metrics"
	"github.com/garage-platform/garage-api/pkg/middleware"
	"github.com/garage-platform/garage-api/pkg/mongodb"
)

const serviceName = "garage-api"

func main() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(context.Background(), signalCh); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, signalCh <-chan os.Signal) error {
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.DefaultConfig(serviceName)).WithError(err).Error("Invalid configuration")
		return err
	}

	logConfig := logging.DefaultConfig(cfg.ServiceName)
	logConfig.Level = cfg.LogLevel
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting garage-api")

	// Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(cfg.ServiceName))
	businessMetrics := middleware.NewBusinessMetrics(m)

	// Request validation
	middleware.InitValidator()

	// MongoDB
	mongoClient, err := mongodb.NewClient(ctx, cfg.Mongo)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", cfg.Mongo.Database)

	// Redis is optional; without it the report scheduler skips the
	// cross-instance lock.
	var cacheClient cache.Client
	if cfg.Redis.Enabled {
		cacheClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without cache")
			cacheClient = nil
		} else {
			logger.Info("Connected to Redis", "addr", cfg.Redis.Addr)
		}
	}

	rates, err := domain.NewTaxRates(cfg.Tax.CGSTPercent, cfg.Tax.SGSTPercent)
	if err != nil {
		logger.WithError(err).Error("Invalid tax configuration")
		return err
	}

	// Repositories
	db := mongoClient.Database()
	customerRepo := mongoRepo.NewCustomerRepository(db)
	vehicleRepo := mongoRepo.NewVehicleRepository(db)
	partRepo := mongoRepo.NewPartRepository(db)
	supplierRepo := mongoRepo.NewSupplierRepository(db)
	purchaseOrderRepo := mongoRepo.NewPurchaseOrderRepository(db)
	jobCardRepo := mongoRepo.NewJobCardRepository(db)
	billRepo := mongoRepo.NewBillRepository(db)
	employeeRepo := mongoRepo.NewEmployeeRepository(db)
	payrollRepo := mongoRepo.NewPayrollRepository(db)

	// Outbound email
	var reportSender application.ReportSender
	if cfg.SMTP.Enabled {
		reportSender = email.NewMailer(cfg.SMTP, logger)
		logger.Info("SMTP mailer initialized", "host", cfg.SMTP.Host)
	}

	// Application services
	customerService := application.NewCustomerService(customerRepo, vehicleRepo, logger)
	inventoryService := application.NewInventoryService(partRepo, supplierRepo, logger)
	purchaseOrderService := application.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, partRepo, businessMetrics, logger)
	jobCardService := application.NewJobCardService(jobCardRepo, customerRepo, vehicleRepo, partRepo, rates, businessMetrics, logger)
	billingService := application.NewBillingService(billRepo, jobCardRepo, rates, businessMetrics, logger)
	payrollService := application.NewPayrollService(employeeRepo, payrollRepo, logger)
	reportService := application.NewReportService(jobCardRepo, billRepo, partRepo, reportSender, cacheClient, businessMetrics, logger)

	tokenService := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiry)
	verifier := &application.EnvCredentialVerifier{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}
	authService := application.NewAuthService(verifier, tokenService, cfg.Auth.JWTExpiry, logger)

	// Daily report scheduler
	if cfg.Report.Enabled {
		scheduler := application.NewReportScheduler(reportService, cacheClient, cfg.Report.Hour, logger)
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Router
	router := gin.New()
	middleware.Setup(router, middleware.DefaultConfig(cfg.ServiceName, logger.Logger))
	router.Use(middleware.MetricsMiddleware(m))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(cfg.ServiceName))
	router.GET("/ready", middleware.ReadinessCheck(cfg.ServiceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// Login stays outside the auth middleware
	public := router.Group("/api/v1")
	handlers.NewAuthHandler(authService, logger).RegisterRoutes(public)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(tokenService))

	handlers.NewCustomerHandler(customerService, logger).RegisterRoutes(v1)
	handlers.NewInventoryHandler(inventoryService, logger).RegisterRoutes(v1)
	handlers.NewPurchaseOrderHandler(purchaseOrderService, logger).RegisterRoutes(v1)
	handlers.NewJobCardHandler(jobCardService, logger).RegisterRoutes(v1)
	handlers.NewBillingHandler(billingService, logger).RegisterRoutes(v1)
	handlers.NewPayrollHandler(payrollService, logger).RegisterRoutes(v1)
	handlers.NewReportHandler(reportService, logger).RegisterRoutes(v1)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", cfg.ServerAddr)

	<-signalCh
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
	return nil
}
