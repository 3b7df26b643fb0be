package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	appfeeds "github.com/sellerbridge/backend/internal/application/feeds"
	"github.com/sellerbridge/backend/internal/infrastructure/config"
	"github.com/sellerbridge/backend/internal/infrastructure/logger"
	"github.com/sellerbridge/backend/internal/infrastructure/mws"
	"github.com/sellerbridge/backend/internal/infrastructure/persistence"
)

// feedcheck runs a single reconciliation pass over pending feed
// submissions and exits. Pass submission ids as arguments to restrict
// the pass to those submissions.
func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout for the reconciliation pass")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

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

	repo := persistence.NewGormFeedSubmissionRepository(db.DB)
	reconciler := appfeeds.NewReconcilerService(mwsClient, repo, log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	summary, err := reconciler.Reconcile(ctx, flag.Args())
	if err != nil {
		log.Fatal("Reconciliation pass failed", zap.Error(err))
	}

	log.Info("Reconciliation pass complete",
		zap.Int("checked", summary.Checked),
		zap.Int("advanced", summary.Advanced),
		zap.Int("completed", summary.Completed),
		zap.Int("cancelled", summary.Cancelled),
		zap.Int("deferred", summary.Deferred))
}
