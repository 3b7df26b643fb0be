package feeds

import (
	"context"
	"errors"
	"fmt"

	"github.com/sellerbridge/backend/internal/domain/feeds"
	"go.uber.org/zap"
)

// SubmitOutcome reports what happened to a submitted feed. The feed may be
// accepted remotely even when its local tracking record could not be
// written; Recorded separates those two facts so callers never re-send a
// feed the remote side already holds.
type SubmitOutcome struct {
	// Submission is the local tracking record, nil when Recorded is false
	Submission *feeds.FeedSubmission
	// SubmissionID is the remote id, empty when the acknowledgment did not
	// carry one
	SubmissionID string
	// Recorded is true when the tracking record was persisted
	Recorded bool
}

// SubmitterService builds feed envelopes, submits them and records the
// resulting submissions for later reconciliation
type SubmitterService struct {
	transport feeds.FeedTransport
	repo      feeds.FeedSubmissionWriter
	header    feeds.EnvelopeHeader
	logger    *zap.Logger
}

// NewSubmitterService creates a new SubmitterService
func NewSubmitterService(
	transport feeds.FeedTransport,
	repo feeds.FeedSubmissionWriter,
	header feeds.EnvelopeHeader,
	logger *zap.Logger,
) *SubmitterService {
	return &SubmitterService{
		transport: transport,
		repo:      repo,
		header:    header,
		logger:    logger,
	}
}

// Submit validates the record trees, wraps them in an envelope for the
// given feed type and sends the result for asynchronous processing. On
// success a pending FeedSubmission is persisted for the reconciler.
//
// Failures before the network call (validation, encoding) and submit
// failures return an error and nothing is sent. After the remote side
// accepted the feed, a malformed acknowledgment or a failed local insert
// degrades to SubmitOutcome{Recorded: false} with a nil error; re-sending
// would duplicate the feed.
func (s *SubmitterService) Submit(ctx context.Context, feedType feeds.FeedType, records []*feeds.Node) (*SubmitOutcome, error) {
	if !feedType.IsValid() {
		return nil, feeds.ErrInvalidFeedType
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to submit", feeds.ErrInvalidRecordValue)
	}
	if err := feeds.ValidateRecords(records); err != nil {
		return nil, err
	}

	body, err := feeds.EncodeEnvelope(feedType.MessageType(), records, s.header)
	if err != nil {
		return nil, err
	}

	receipt, err := s.transport.SubmitFeed(ctx, feedType, []byte(body))
	if err != nil {
		if errors.Is(err, feeds.ErrMalformedReceipt) {
			s.logger.Warn("feed accepted but acknowledgment was malformed; submission not recorded",
				zap.String("feed_type", feedType.String()),
				zap.Int("records", len(records)),
				zap.Error(err))
			return &SubmitOutcome{Recorded: false}, nil
		}
		return nil, err
	}

	submission, err := feeds.NewFeedSubmission(feedType, receipt.SubmissionID, receipt.ProcessingStatus)
	if err != nil {
		s.logger.Warn("feed accepted but receipt was not trackable; submission not recorded",
			zap.String("feed_type", feedType.String()),
			zap.String("submission_id", receipt.SubmissionID),
			zap.Error(err))
		return &SubmitOutcome{SubmissionID: receipt.SubmissionID, Recorded: false}, nil
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		s.logger.Warn("feed accepted but tracking record could not be written",
			zap.String("feed_type", feedType.String()),
			zap.String("submission_id", receipt.SubmissionID),
			zap.Error(err))
		return &SubmitOutcome{SubmissionID: receipt.SubmissionID, Recorded: false}, nil
	}

	s.logger.Info("feed submitted",
		zap.String("feed_type", feedType.String()),
		zap.String("submission_id", submission.SubmissionID),
		zap.Int("records", len(records)))
	return &SubmitOutcome{
		Submission:   submission,
		SubmissionID: submission.SubmissionID,
		Recorded:     true,
	}, nil
}

// ---------------------------------------------------------------------------
// Typed convenience wrappers
// ---------------------------------------------------------------------------

// SubmitOrderAcknowledgements sends an order acknowledgement feed
func (s *SubmitterService) SubmitOrderAcknowledgements(ctx context.Context, messages []feeds.OrderAcknowledgementMessage) (*SubmitOutcome, error) {
	records := make([]*feeds.Node, 0, len(messages))
	for _, m := range messages {
		records = append(records, m.RecordTree())
	}
	return s.Submit(ctx, feeds.FeedTypeOrderAcknowledgement, records)
}

// SubmitOrderFulfillments sends an order fulfillment feed
func (s *SubmitterService) SubmitOrderFulfillments(ctx context.Context, messages []feeds.OrderFulfillmentMessage) (*SubmitOutcome, error) {
	records := make([]*feeds.Node, 0, len(messages))
	for _, m := range messages {
		records = append(records, m.RecordTree())
	}
	return s.Submit(ctx, feeds.FeedTypeOrderFulfillment, records)
}

// SubmitPrices sends a price update feed
func (s *SubmitterService) SubmitPrices(ctx context.Context, messages []feeds.PriceMessage) (*SubmitOutcome, error) {
	records := make([]*feeds.Node, 0, len(messages))
	for _, m := range messages {
		records = append(records, m.RecordTree())
	}
	return s.Submit(ctx, feeds.FeedTypePrices, records)
}

// SubmitInventory sends a stock availability feed
func (s *SubmitterService) SubmitInventory(ctx context.Context, messages []feeds.InventoryMessage) (*SubmitOutcome, error) {
	records := make([]*feeds.Node, 0, len(messages))
	for _, m := range messages {
		records = append(records, m.RecordTree())
	}
	return s.Submit(ctx, feeds.FeedTypeInventory, records)
}

// SubmitProducts sends a product data feed built from raw record trees
func (s *SubmitterService) SubmitProducts(ctx context.Context, records []*feeds.Node) (*SubmitOutcome, error) {
	return s.Submit(ctx, feeds.FeedTypeProduct, records)
}

// SubmitRelationships sends a variation relationship feed
func (s *SubmitterService) SubmitRelationships(ctx context.Context, records []*feeds.Node) (*SubmitOutcome, error) {
	return s.Submit(ctx, feeds.FeedTypeRelationship, records)
}

// SubmitImages sends a product image feed
func (s *SubmitterService) SubmitImages(ctx context.Context, records []*feeds.Node) (*SubmitOutcome, error) {
	return s.Submit(ctx, feeds.FeedTypeImage, records)
}

// SubmitOrderAdjustments sends a payment adjustment feed
func (s *SubmitterService) SubmitOrderAdjustments(ctx context.Context, records []*feeds.Node) (*SubmitOutcome, error) {
	return s.Submit(ctx, feeds.FeedTypeOrderAdjustment, records)
}
