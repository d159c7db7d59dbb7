package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-pay-api/api/swagger"
	"github.com/noah-isme/school-pay-api/internal/handler"
	"github.com/noah-isme/school-pay-api/internal/i18n"
	"github.com/noah-isme/school-pay-api/internal/middleware"
	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/internal/remote"
	"github.com/noah-isme/school-pay-api/internal/repository"
	"github.com/noah-isme/school-pay-api/internal/service"
	"github.com/noah-isme/school-pay-api/internal/store"
	"github.com/noah-isme/school-pay-api/pkg/cache"
	"github.com/noah-isme/school-pay-api/pkg/config"
	"github.com/noah-isme/school-pay-api/pkg/database"
	"github.com/noah-isme/school-pay-api/pkg/jobs"
	"github.com/noah-isme/school-pay-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-pay-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-pay-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-pay-api/pkg/storage"
)

// @title School Pay API
// @version 1.0.0
// @description Session and payment gateway for the school tuition portal
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis mirrors session state and caches summaries; the portal stays up
	// without it, just non-durable.
	var snapshots *repository.SnapshotRepository
	var cacheRepo *repository.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, session state will not survive restarts", zap.Error(err))
	} else {
		defer redisClient.Close() //nolint:errcheck
		snapshots = repository.NewSnapshotRepository(redisClient, cfg.JWT.Expiration, logr)
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	// Postgres holds only the portal's audit trail.
	var auditRepo *repository.AuditRepository
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Warn("postgres unavailable, audit trail disabled", zap.Error(err))
	} else {
		defer db.Close() //nolint:errcheck
		auditRepo = repository.NewAuditRepository(db)
	}

	accountsClient := remote.NewAccountsClient(cfg.Remote.AccountsBaseURL, cfg.Remote.Timeout)
	paymentsClient := remote.NewPaymentsClient(cfg.Remote.PaymentsBaseURL, cfg.Remote.Timeout)
	checkoutClient := remote.NewCheckoutClient(remote.CheckoutConfig{
		BaseURL:      cfg.Checkout.BaseURL,
		ClientID:     cfg.Checkout.ClientID,
		ClientSecret: cfg.Checkout.ClientSecret,
		Currency:     cfg.Checkout.Currency,
		ReturnURL:    cfg.Checkout.ReturnURL,
		CancelURL:    cfg.Checkout.CancelURL,
		Timeout:      cfg.Checkout.Timeout,
	})
	assistantClient := remote.NewAssistantClient(remote.AssistantConfig{
		BaseURL:      cfg.Assistant.BaseURL,
		APIKey:       cfg.Assistant.APIKey,
		Model:        cfg.Assistant.Model,
		SystemPrompt: cfg.Assistant.SystemPrompt,
		Timeout:      cfg.Assistant.Timeout,
	})

	var mirror store.SessionMirror
	if snapshots != nil {
		mirror = snapshots
	}
	sessions := store.NewSessionStore(accountsClient, mirror, logr, store.SessionConfig{
		LoginLatency: cfg.Session.LoginLatency,
		SeedEnabled:  cfg.Session.SeedEnabled,
	})
	sessions.Load(ctx)

	payments := store.NewPaymentStore(paymentsClient, logr, store.PaymentStoreConfig{
		ClearOnFailedRefresh: cfg.Payments.ClearOnFailedRefresh,
	})

	metricsSvc := service.NewMetricsService()

	// A single worker serializes reloads so a slow refetch can never race a
	// newer one.
	reconcileQueue := jobs.NewQueue("payment-reconcile", func(ctx context.Context, job jobs.Job) error {
		scope, ok := job.Payload.(store.Scope)
		if !ok {
			return fmt.Errorf("unexpected payload %T", job.Payload)
		}
		start := time.Now()
		err := payments.Load(ctx, scope)
		metricsSvc.ObserveRemoteCall("payments", err, time.Since(start))
		return err
	}, jobs.QueueConfig{Workers: 1, BufferSize: cfg.Payments.ReconcileBuffer, Logger: logr})
	reconcileQueue.Start(ctx)
	defer reconcileQueue.Stop()

	payments.SetReconciler(func(scope store.Scope) {
		if err := reconcileQueue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "reload", Payload: scope}); err != nil {
			logr.Warn("failed to enqueue payment reload", zap.Error(err))
		}
	})

	translator := i18n.New(cfg.Locale.Default)
	if snapshots != nil {
		if saved, err := snapshots.LoadLanguage(ctx); err == nil && saved != "" {
			translator.SetLanguage(saved)
		}
	}

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Summary.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()
	authSvc := service.NewAuthService(sessions, auditRecorderOrNil(auditRepo), validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	summarySvc := service.NewSummaryService(payments, paymentsClient, cacheSvc, service.SummaryConfig{
		UseRemote: cfg.Summary.UseRemote,
		CacheTTL:  cfg.Summary.CacheTTL,
	}, logr)
	dashboardSvc := service.NewDashboardService(sessions, payments, logr)
	assistantSvc := service.NewAssistantService(assistantClient, logr)

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(files, signer, translator, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := exportSvc.Cleanup(0)
				if err != nil {
					logr.Warn("export cleanup failed", zap.Error(err))
				} else if len(removed) > 0 {
					logr.Info("expired exports removed", zap.Int("count", len(removed)))
				}
			}
		}
	}()

	authHandler := handler.NewAuthHandler(authSvc, sessions)
	userHandler := handler.NewUserHandler(sessions, validate)
	paymentHandler := handler.NewPaymentHandler(payments, summarySvc, checkoutClient, exportSvc, logr)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, metricsSvc, auditRepo)
	localeHandler := handler.NewLocaleHandler(translator, nil, logr)
	if snapshots != nil {
		localeHandler = handler.NewLocaleHandler(translator, snapshots, logr)
	}
	assistantHandler := handler.NewAssistantHandler(assistantSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Audit middleware degrades to a pass-through when postgres is down.
	audited := func(action, resource string) gin.HandlerFunc {
		if auditRepo == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.Audit(auditRepo, action, resource)
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	users := api.Group("/users", middleware.JWT(authSvc), middleware.RequireAdmin())
	users.GET("", userHandler.List)
	users.POST("", audited(models.AuditActionAccountCreate, "users"), userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", audited(models.AuditActionAccountUpdate, "users"), userHandler.Update)
	users.DELETE("/:id", audited(models.AuditActionAccountDelete, "users"), userHandler.Delete)

	pay := api.Group("/payments", middleware.JWT(authSvc), middleware.Guard())
	pay.GET("/user/:id", paymentHandler.ListForAccount)
	pay.GET("/user/:id/summary", paymentHandler.Summary)
	pay.GET("/checkout/success", audited(models.AuditActionMarkPaid, "payments"), paymentHandler.CheckoutSuccess)
	pay.GET("/:id", paymentHandler.Get)
	pay.PATCH("/:id/status", audited(models.AuditActionStatusChange, "payments"), paymentHandler.UpdateStatus)
	pay.POST("/:id/checkout", paymentHandler.Checkout)
	pay.POST("/:id/receipt", paymentHandler.Receipt)

	payAdmin := api.Group("/payments", middleware.JWT(authSvc), middleware.RequireAdmin())
	payAdmin.GET("", paymentHandler.List)
	payAdmin.POST("", paymentHandler.Create)
	payAdmin.PUT("/:id", paymentHandler.Update)
	payAdmin.DELETE("/:id", paymentHandler.Delete)
	payAdmin.GET("/ledger", paymentHandler.Ledger)

	api.GET("/exports/:token", paymentHandler.Download)

	admin := api.Group("/admin", middleware.JWT(authSvc), middleware.Guard(models.RoleAdmin))
	admin.GET("/overview", dashboardHandler.Overview)
	admin.GET("/metrics", dashboardHandler.SystemMetrics)
	if auditRepo != nil {
		admin.GET("/audit", dashboardHandler.AuditTrail)
	}

	locale := api.Group("/locale")
	locale.GET("", localeHandler.Get)
	locale.PUT("", localeHandler.Set)
	locale.GET("/catalog", localeHandler.Catalog)

	assistant := api.Group("/assistant", middleware.JWT(authSvc))
	assistant.GET("", assistantHandler.Status)
	assistant.POST("/ask", assistantHandler.Ask)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// auditRecorderOrNil keeps the typed-nil pointer out of the interface value.
func auditRecorderOrNil(repo *repository.AuditRepository) service.AuditRecorder {
	if repo == nil {
		return nil
	}
	return repo
}
