package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	financeapp "github.com/proptraka/backend/internal/application/finance"
	identityapp "github.com/proptraka/backend/internal/application/identity"
	lettingapp "github.com/proptraka/backend/internal/application/letting"
	maintenanceapp "github.com/proptraka/backend/internal/application/maintenance"
	domainfinance "github.com/proptraka/backend/internal/domain/finance"
	"github.com/proptraka/backend/internal/domain/shared"
	"github.com/proptraka/backend/internal/infrastructure/auth"
	"github.com/proptraka/backend/internal/infrastructure/cache"
	"github.com/proptraka/backend/internal/infrastructure/config"
	"github.com/proptraka/backend/internal/infrastructure/event"
	"github.com/proptraka/backend/internal/infrastructure/logger"
	"github.com/proptraka/backend/internal/infrastructure/migration"
	"github.com/proptraka/backend/internal/infrastructure/persistence"
	"github.com/proptraka/backend/internal/infrastructure/scheduler"
	"github.com/proptraka/backend/internal/infrastructure/telemetry"
	"github.com/proptraka/backend/internal/interfaces/http/handler"
	"github.com/proptraka/backend/internal/interfaces/http/middleware"
	"github.com/proptraka/backend/internal/interfaces/http/router"
)

const migrationsPath = "migrations"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PropTraka backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database query tracing
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Apply pending migrations on the server's own connection pool
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	migrator, err := migration.New(sqlDB, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Up(); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Redis is used for the token blacklist and the idempotency store. Both
	// degrade to in-memory implementations when it is unreachable, which is
	// fine for a single instance and logged loudly otherwise.
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize repositories
	landlordRepo := persistence.NewGormLandlordRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	tenancyRepo := persistence.NewGormTenancyRepository(db.DB)
	txnRepo := persistence.NewGormRevenueTransactionRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRequestRepository(db.DB)
	chargeWriter := persistence.NewGormTenancyChargeWriter(db.DB)
	terminationApplier := persistence.NewGormTerminationApplier(db.DB)

	// Arrears calculator shared by the ledger, reminders and sweeps
	calculator := domainfinance.NewArrearsCalculator(
		domainfinance.WithCriticalThreshold(cfg.Arrears.CriticalThresholdDays),
	)

	// In-process event bus with a structured-log audit trail
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(landlordRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log,
		identityapp.WithAuthEventPublisher(eventBus))

	tenancyConfig := lettingapp.DefaultTenancyServiceConfig()
	if cfg.Arrears.OpenEndedHorizonMonths > 0 {
		tenancyConfig.OpenEndedHorizonMonths = cfg.Arrears.OpenEndedHorizonMonths
	}

	propertyService := lettingapp.NewPropertyService(propertyRepo, tenancyRepo, log)
	tenantService := lettingapp.NewTenantService(tenantRepo, tenancyRepo, log)
	tenancyService := lettingapp.NewTenancyService(tenancyRepo, propertyRepo, tenantRepo, chargeWriter, tenancyConfig, log,
		lettingapp.WithTenancyEventPublisher(eventBus))

	transactionService := financeapp.NewTransactionService(txnRepo, tenancyRepo, idempotencyStore, shared.DefaultIdempotencyConfig(), log,
		financeapp.WithTransactionEventPublisher(eventBus))
	arrearsService := financeapp.NewArrearsService(txnRepo, calculator, log)
	reminderService := financeapp.NewReminderService(txnRepo, tenancyRepo, tenantRepo, calculator, log)
	terminationService := financeapp.NewTerminationService(tenancyRepo, txnRepo, terminationApplier, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, propertyRepo, log)
	reportService := financeapp.NewReportService(txnRepo, expenseRepo, log)
	sweepService := financeapp.NewSweepService(txnRepo, log)

	requestService := maintenanceapp.NewRequestService(maintenanceRepo, propertyRepo, log)

	// Start the overdue sweep scheduler (if enabled)
	var sweepScheduler *scheduler.OverdueSweepScheduler
	if cfg.Scheduler.Enabled {
		sweepScheduler = scheduler.NewOverdueSweepScheduler(sweepService, log, cfg.Scheduler)
		if err := sweepScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sweep scheduler", zap.Error(err))
		}
		defer func() {
			if err := sweepScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping sweep scheduler", zap.Error(err))
			}
		}()
		log.Info("Overdue sweep scheduler started",
			zap.Duration("interval", cfg.Scheduler.OverdueSweepInterval),
			zap.Int("batch_size", cfg.Scheduler.SweepBatchSize),
		)
	}

	// Stricter limiter on the credential endpoints
	var credentialGuard []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		credentialGuard = append(credentialGuard, middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie, credentialGuard...)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	tenancyHandler := handler.NewTenancyHandler(tenancyService, terminationService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	arrearsHandler := handler.NewArrearsHandler(arrearsService, reminderService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)
	maintenanceHandler := handler.NewMaintenanceHandler(requestService)
	systemHandler := handler.NewSystemHandler(db, sweepScheduler)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(middleware.JWT(middleware.JWTConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingAttributeInjector())
	}

	// Health probes sit outside the versioned API
	systemHandler.RegisterProbes(engine)

	// Mount the API
	router.New(engine).
		Register(
			authHandler,
			propertyHandler,
			tenantHandler,
			tenancyHandler,
			transactionHandler,
			arrearsHandler,
			expenseHandler,
			reportHandler,
			maintenanceHandler,
			systemHandler,
		).
		Setup()

	// Create HTTP server with config
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
