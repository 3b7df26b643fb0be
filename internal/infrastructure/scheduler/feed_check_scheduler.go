package scheduler

import (
	"context"
	"sync"
	"time"

	appfeeds "github.com/sellerbridge/backend/internal/application/feeds"
	"go.uber.org/zap"
)

// Reconciler runs one reconciliation pass over pending feed submissions
type Reconciler interface {
	Reconcile(ctx context.Context, submissionIDs []string) (*appfeeds.ReconcileSummary, error)
}

// FeedCheckSchedulerConfig holds configuration for the feed check scheduler
type FeedCheckSchedulerConfig struct {
	// PollInterval is how often pending submissions are reconciled
	PollInterval time.Duration
}

// DefaultFeedCheckSchedulerConfig returns default scheduler configuration
func DefaultFeedCheckSchedulerConfig() FeedCheckSchedulerConfig {
	return FeedCheckSchedulerConfig{
		PollInterval: 5 * time.Minute,
	}
}

// FeedCheckScheduler periodically reconciles pending feed submissions
// against the remote side
type FeedCheckScheduler struct {
	config     FeedCheckSchedulerConfig
	reconciler Reconciler
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewFeedCheckScheduler creates a new feed check scheduler
func NewFeedCheckScheduler(
	config FeedCheckSchedulerConfig,
	reconciler Reconciler,
	logger *zap.Logger,
) *FeedCheckScheduler {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultFeedCheckSchedulerConfig().PollInterval
	}
	return &FeedCheckScheduler{
		config:     config,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Start starts the background reconciliation loop
func (s *FeedCheckScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("feed check scheduler started",
		zap.Duration("poll_interval", s.config.PollInterval))
	return nil
}

// Stop stops the loop and waits for an in-flight pass to finish, bounded
// by the given context
func (s *FeedCheckScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("feed check scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *FeedCheckScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *FeedCheckScheduler) runOnce(ctx context.Context) {
	summary, err := s.reconciler.Reconcile(ctx, nil)
	if err != nil {
		s.logger.Error("reconciliation pass failed", zap.Error(err))
		return
	}
	if summary.Checked > 0 {
		s.logger.Debug("reconciliation pass done",
			zap.Int("checked", summary.Checked),
			zap.Int("completed", summary.Completed),
			zap.Int("deferred", summary.Deferred))
	}
}
