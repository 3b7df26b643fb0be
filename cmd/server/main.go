package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/sellerbridge/backend/internal/application/catalog"
	appfeeds "github.com/sellerbridge/backend/internal/application/feeds"
	"github.com/sellerbridge/backend/internal/infrastructure/config"
	"github.com/sellerbridge/backend/internal/infrastructure/logger"
	"github.com/sellerbridge/backend/internal/infrastructure/mws"
	"github.com/sellerbridge/backend/internal/infrastructure/persistence"
	"github.com/sellerbridge/backend/internal/infrastructure/scheduler"
	"github.com/sellerbridge/backend/internal/interfaces/http/handler"
	"github.com/sellerbridge/backend/internal/interfaces/http/middleware"
	"github.com/sellerbridge/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Initialize database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	// Initialize repositories
	submissionRepo := persistence.NewGormFeedSubmissionRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)

	// Initialize marketplace API client
	mwsClient, err := mws.NewClient(&mws.Config{
		SellerID:       cfg.Marketplace.SellerID,
		AccessKey:      cfg.Marketplace.AccessKey,
		SecretKey:      cfg.Marketplace.SecretKey,
		MerchantID:     cfg.Marketplace.MerchantID,
		MarketplaceIDs: cfg.Marketplace.MarketplaceIDs,
		Endpoint:       cfg.Marketplace.Endpoint,
		TimeoutSeconds: cfg.Marketplace.TimeoutSeconds,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize marketplace client", zap.Error(err))
	}

	// Initialize application services
	submitter := appfeeds.NewSubmitterService(mwsClient, submissionRepo, mwsClient.EnvelopeHeader(), log)
	reconciler := appfeeds.NewReconcilerService(mwsClient, submissionRepo, log)
	skuLocator, err := appcatalog.NewSkuLocator(cfg.Sku.LookupPattern, itemRepo, log)
	if err != nil {
		log.Fatal("Failed to initialize SKU locator", zap.Error(err))
	}

	// Start the background feed check scheduler
	if cfg.Reconcile.Enabled {
		feedCheck := scheduler.NewFeedCheckScheduler(scheduler.FeedCheckSchedulerConfig{
			PollInterval: cfg.Reconcile.PollInterval,
		}, reconciler, log)
		if err := feedCheck.Start(context.Background()); err != nil {
			log.Fatal("Failed to start feed check scheduler", zap.Error(err))
		}
		defer feedCheck.Stop(context.Background())
		log.Info("Feed check scheduler started",
			zap.Duration("poll_interval", cfg.Reconcile.PollInterval))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup HTTP engine with middleware
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(8 << 20))

	// Health check endpoint (outside the versioned API)
	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes
	r := router.NewRouter(engine)
	r.Register(handler.NewFeedsHandler(submitter, reconciler, submissionRepo)).
		Register(handler.NewCatalogHandler(skuLocator)).
		Register(handler.NewSystemHandler(db.Ping))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in a goroutine so shutdown can be handled gracefully
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
