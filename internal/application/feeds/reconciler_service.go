package feeds

import (
	"context"
	"errors"
	"fmt"

	"github.com/sellerbridge/backend/internal/domain/feeds"
	"github.com/sellerbridge/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReconcileSummary counts what one reconciliation pass did. Deferred
// submissions stay pending and are retried on the next pass.
type ReconcileSummary struct {
	// Checked is the number of pending submissions examined
	Checked int
	// Advanced counts submissions moved from Submitted to InProcess
	Advanced int
	// Completed counts submissions that reached Done with a recorded result
	Completed int
	// Cancelled counts submissions that reached Cancelled
	Cancelled int
	// Deferred counts submissions left pending for the next pass
	Deferred int
}

// ReconcilerService drives pending submissions toward their terminal
// status by polling the remote side. Every step is idempotent; a pass can
// die at any point and the next one picks up where it left off.
type ReconcilerService struct {
	transport feeds.FeedTransport
	repo      feeds.FeedSubmissionRepository
	logger    *zap.Logger
}

// NewReconcilerService creates a new ReconcilerService
func NewReconcilerService(
	transport feeds.FeedTransport,
	repo feeds.FeedSubmissionRepository,
	logger *zap.Logger,
) *ReconcilerService {
	return &ReconcilerService{
		transport: transport,
		repo:      repo,
		logger:    logger,
	}
}

// Reconcile runs one reconciliation pass over pending submissions. With
// submissionIDs the pass is restricted to those remote ids; without, every
// pending submission is checked.
//
// The bulk status lookup failing fails the whole pass. Per-submission
// failures after that point only defer the one submission.
func (s *ReconcilerService) Reconcile(ctx context.Context, submissionIDs []string) (*ReconcileSummary, error) {
	pending, err := s.repo.FindPending(ctx, submissionIDs)
	if err != nil {
		return nil, fmt.Errorf("find pending submissions: %w", err)
	}

	summary := &ReconcileSummary{}
	if len(pending) == 0 {
		return summary, nil
	}

	ids := make([]string, 0, len(pending))
	for _, sub := range pending {
		ids = append(ids, sub.SubmissionID)
	}
	statuses, err := s.transport.ListSubmissionStatuses(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list submission statuses: %w", err)
	}

	for i := range pending {
		sub := &pending[i]
		summary.Checked++

		remote, ok := statuses[sub.SubmissionID]
		if !ok {
			// The remote side does not know the id yet
			summary.Deferred++
			continue
		}

		switch {
		case remote == feeds.StatusInProcess && sub.ProcessingStatus == feeds.StatusSubmitted:
			s.advance(ctx, sub, summary)
		case remote == feeds.StatusCancelled:
			s.cancel(ctx, sub, summary)
		case remote == feeds.StatusDone:
			s.complete(ctx, sub, summary)
		default:
			// Still submitted or already in process; nothing to record
			summary.Deferred++
		}
	}

	s.logger.Info("reconciliation pass finished",
		zap.Int("checked", summary.Checked),
		zap.Int("advanced", summary.Advanced),
		zap.Int("completed", summary.Completed),
		zap.Int("cancelled", summary.Cancelled),
		zap.Int("deferred", summary.Deferred))
	return summary, nil
}

// advance records that the remote processor picked the submission up
func (s *ReconcilerService) advance(ctx context.Context, sub *feeds.FeedSubmission, summary *ReconcileSummary) {
	if err := sub.MarkInProcess(); err != nil {
		summary.Deferred++
		return
	}
	if !s.update(ctx, sub, summary) {
		return
	}
	summary.Advanced++
}

// cancel moves a remotely cancelled submission to its terminal status.
// Cancellations have no processing report to fetch.
func (s *ReconcilerService) cancel(ctx context.Context, sub *feeds.FeedSubmission, summary *ReconcileSummary) {
	if err := sub.MarkCancelled(); err != nil {
		summary.Deferred++
		return
	}
	if !s.update(ctx, sub, summary) {
		return
	}
	summary.Cancelled++
	s.logger.Info("submission cancelled remotely",
		zap.String("submission_id", sub.SubmissionID),
		zap.String("feed_type", sub.FeedType.String()))
}

// complete fetches and applies the processing report of a finished
// submission
func (s *ReconcilerService) complete(ctx context.Context, sub *feeds.FeedSubmission, summary *ReconcileSummary) {
	raw, err := s.transport.GetSubmissionResult(ctx, sub.SubmissionID)
	if err != nil {
		if errors.Is(err, feeds.ErrResultNotReady) {
			summary.Deferred++
			return
		}
		s.logger.Warn("fetching submission result failed",
			zap.String("submission_id", sub.SubmissionID),
			zap.Error(err))
		summary.Deferred++
		return
	}

	result, err := feeds.ParseSubmissionResult(raw)
	if err != nil {
		var remoteErr *feeds.RemoteProcessingError
		if errors.As(err, &remoteErr) {
			s.logger.Warn("result document carried a remote error",
				zap.String("submission_id", sub.SubmissionID),
				zap.String("remote_message", remoteErr.Message))
		} else {
			s.logger.Warn("parsing submission result failed",
				zap.String("submission_id", sub.SubmissionID),
				zap.Error(err))
		}
		summary.Deferred++
		return
	}
	if !result.Complete {
		// Remote status says done but the report is not final yet
		summary.Deferred++
		return
	}

	if err := sub.ApplyResult(feeds.StatusDone, result); err != nil {
		summary.Deferred++
		return
	}
	if !s.update(ctx, sub, summary) {
		return
	}
	summary.Completed++
	s.logger.Info("submission completed",
		zap.String("submission_id", sub.SubmissionID),
		zap.String("feed_type", sub.FeedType.String()),
		zap.Int64("messages_processed", result.MessagesProcessed),
		zap.Int64("messages_with_error", result.MessagesErrored))
}

// update persists the submission, treating a lost optimistic-concurrency
// race as someone else's completed work
func (s *ReconcilerService) update(ctx context.Context, sub *feeds.FeedSubmission, summary *ReconcileSummary) bool {
	err := s.repo.UpdateIfPending(ctx, sub)
	if err == nil {
		return true
	}
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		s.logger.Debug("submission already updated by a concurrent pass",
			zap.String("submission_id", sub.SubmissionID))
		summary.Deferred++
		return false
	}
	s.logger.Warn("persisting submission update failed",
		zap.String("submission_id", sub.SubmissionID),
		zap.Error(err))
	summary.Deferred++
	return false
}
