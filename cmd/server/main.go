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
	appaccounting "github.com/obraerp/backend/internal/application/accounting"
	appconstruction "github.com/obraerp/backend/internal/application/construction"
	exportapp "github.com/obraerp/backend/internal/application/export"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	importapp "github.com/obraerp/backend/internal/application/import"
	"github.com/obraerp/backend/internal/infrastructure/auth"
	"github.com/obraerp/backend/internal/infrastructure/cache"
	"github.com/obraerp/backend/internal/infrastructure/config"
	"github.com/obraerp/backend/internal/infrastructure/logger"
	"github.com/obraerp/backend/internal/infrastructure/persistence"
	"github.com/obraerp/backend/internal/infrastructure/printing"
	"github.com/obraerp/backend/internal/infrastructure/scheduler"
	"github.com/obraerp/backend/internal/infrastructure/storage"
	"github.com/obraerp/backend/internal/infrastructure/telemetry"
	"github.com/obraerp/backend/internal/interfaces/http/handler"
	"github.com/obraerp/backend/internal/interfaces/http/middleware"
	"github.com/obraerp/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

var version = "dev"

// pingFunc adapts a probe function to handler.Pinger
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting ObraERP API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	metrics, err := telemetry.NewBusinessMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to register business metrics", zap.Error(err))
	}

	// Database with the zap-backed GORM logger and otelgorm tracing
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.NewDBTracingPlugin(cfg.Telemetry, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		if _, err := telemetry.RegisterPoolMetrics(meterProvider, sqlDB); err != nil {
			log.Warn("Failed to register connection pool metrics", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Redis backs the session blacklist and rate limits when enabled
	backends := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	if err := backends.Connect(ctx); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = backends.Close() }()
	blacklist := backends.TokenBlacklist()

	// Repositories
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	journalRepo := persistence.NewGormJournalEntryRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetItemRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	inspectionRepo := persistence.NewGormInspectionRepository(db.DB)
	rubroRepo := persistence.NewGormRubroRepository(db.DB)
	searchRepo := persistence.NewGormSearchRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, orgRepo, jwtService, blacklist, log)
	organizationService := appidentity.NewOrganizationService(orgRepo)
	userService := appidentity.NewUserService(userRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)

	chartService := appaccounting.NewStandardChartService(accountRepo, journalRepo, rateRepo,
		persistence.NewGormTransactionScope(db.DB), log)
	enablementService := appaccounting.NewEnablementService(orgRepo, chartService,
		persistence.NewGormTransactionScope(db.DB), log)
	enablementService.SetMetrics(metrics)
	accountService := appaccounting.NewAccountService(accountRepo, journalRepo)
	journalService := appaccounting.NewJournalService(journalRepo, accountRepo, projectRepo)
	rateService := appaccounting.NewExchangeRateService(rateRepo)

	systemService := appidentity.NewSystemService(orgRepo, userRepo, chartService,
		persistence.NewGormIdentityTransactionScope(db.DB), log)

	clientService := appconstruction.NewClientService(clientRepo, projectRepo, invoiceRepo)
	projectService := appconstruction.NewProjectService(projectRepo, clientRepo, budgetRepo, rubroRepo)
	employeeService := appconstruction.NewEmployeeService(employeeRepo)
	providerService := appconstruction.NewProviderService(providerRepo)
	invoiceService := appconstruction.NewInvoiceService(invoiceRepo, clientRepo, providerRepo, projectRepo)
	inspectionService := appconstruction.NewInspectionService(inspectionRepo, projectRepo)
	rubroService := appconstruction.NewRubroService(rubroRepo)
	searchService := appconstruction.NewSearchService(searchRepo)

	importService := importapp.NewService(clientService, accountService, rubroService,
		importapp.WithMaxRows(cfg.Import.MaxRows),
		importapp.WithMetrics(metrics),
		importapp.WithLogger(log),
	)

	exportOpts := []exportapp.Option{exportapp.WithMetrics(metrics), exportapp.WithLogger(log)}
	var pdfRenderer *printing.ChromedpRenderer
	if cfg.Export.PDFEnabled {
		pdfRenderer = printing.NewChromedpRenderer(printing.ConfigFromExport(cfg.Export, log))
		defer func() { _ = pdfRenderer.Close() }()
		exportOpts = append(exportOpts, exportapp.WithPDF(printing.NewTableRenderer(pdfRenderer)))
	}
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to configure export archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Warn("Export archive bucket unavailable", zap.String("bucket", archive.Bucket()), zap.Error(err))
		}
		exportOpts = append(exportOpts, exportapp.WithArchive(archive))
	}
	exportService := exportapp.NewService(exportapp.Sources{
		Projects:    projectService,
		Clients:     clientService,
		Accounts:    accountService,
		Journal:     journalService,
		Inspections: inspectionService,
	}, exportOpts...)

	// Maintenance jobs
	jobs := scheduler.New(log)
	if cfg.Scheduler.Enabled {
		for _, job := range []scheduler.Job{
			scheduler.PurgeJob(cfg.Scheduler.RateLimitPurgeSpec, backends, log),
			scheduler.ChartReconcileJob(cfg.Scheduler.ChartReconcileSpec, cfg.Scheduler.ChartReconcileTimeout, enablementService, log),
		} {
			if err := jobs.Add(job); err != nil {
				log.Fatal("Failed to schedule job", zap.String("job", job.Name), zap.Error(err))
			}
		}
		jobs.Start()
	}

	// Gin engine and global middleware, in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Tracing - Server span per request
	// 3. Logger - Log requests with request, trace and tenant ids
	// 4. Recovery - Catch panics
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	checks := map[string]handler.Pinger{
		"database": pingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if client := backends.Client(); client != nil {
		checks["redis"] = pingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}

	router.Setup(engine, router.Handlers{
		Health:       handler.NewHealthHandler(version, checks),
		Auth:         handler.NewAuthHandler(authService),
		Organization: handler.NewOrganizationHandler(organizationService, userService),
		System:       handler.NewSystemHandler(systemService),

		Accounting:    handler.NewAccountingHandler(enablementService),
		Accounts:      handler.NewAccountHandler(accountService),
		Journal:       handler.NewJournalHandler(journalService),
		ExchangeRates: handler.NewExchangeRateHandler(rateService),

		Clients:     handler.NewResourceHandler[appconstruction.ClientRequest, appconstruction.ClientResponse](clientService),
		Projects:    handler.NewResourceHandler[appconstruction.ProjectRequest, appconstruction.ProjectResponse](projectService),
		Employees:   handler.NewResourceHandler[appconstruction.EmployeeRequest, appconstruction.EmployeeResponse](employeeService),
		Providers:   handler.NewResourceHandler[appconstruction.ProviderRequest, appconstruction.ProviderResponse](providerService),
		Inspections: handler.NewResourceHandler[appconstruction.InspectionRequest, appconstruction.InspectionResponse](inspectionService),
		Rubros:      handler.NewResourceHandler[appconstruction.RubroRequest, appconstruction.RubroResponse](rubroService),
		Budgets:     handler.NewBudgetHandler(projectService),
		Invoices:    handler.NewInvoiceHandler(invoiceService),
		Search:      handler.NewSearchHandler(searchService),

		Import: handler.NewImportHandler(importService, cfg.Import.MaxFileSize),
		Export: handler.NewExportHandler(exportService),
	}, router.Guards{
		Authenticator: authService,
		Organizations: orgRepo,
		LoginLimiter:  backends.Limiter("login", cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow),
		SystemLimiter: backends.Limiter("system", cfg.HTTP.SystemRateLimitRequests, cfg.HTTP.SystemRateLimitWindow),
		Recorder:      metrics,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
