package feeds

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sellerbridge/backend/internal/domain/feeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSubmitter(transport *MockFeedTransport, repo *MockFeedSubmissionRepository) *SubmitterService {
	header := feeds.EnvelopeHeader{MerchantID: "MERCHANT-1"}
	return NewSubmitterService(transport, repo, header, zap.NewNop())
}

func TestSubmitterService_Submit(t *testing.T) {
	transport := new(MockFeedTransport)
	repo := new(MockFeedSubmissionRepository)
	service := newSubmitter(transport, repo)

	receipt := &feeds.SubmitReceipt{SubmissionID: "5551234", ProcessingStatus: feeds.StatusSubmitted}
	transport.On("SubmitFeed", mock.Anything, feeds.FeedTypeInventory, mock.MatchedBy(func(body []byte) bool {
		return strings.Contains(string(body), "<MessageType>Inventory</MessageType>") &&
			strings.Contains(string(body), "<SKU>ABC-1</SKU>")
	})).Return(receipt, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*feeds.FeedSubmission")).Return(nil)

	records := []*feeds.Node{feeds.NewNode().Set("SKU", feeds.String("ABC-1"))}
	outcome, err := service.Submit(context.Background(), feeds.FeedTypeInventory, records)
	require.NoError(t, err)

	assert.True(t, outcome.Recorded)
	assert.Equal(t, "5551234", outcome.SubmissionID)
	require.NotNil(t, outcome.Submission)
	assert.Equal(t, feeds.StatusSubmitted, outcome.Submission.ProcessingStatus)
	assert.Equal(t, feeds.FeedTypeInventory, outcome.Submission.FeedType)

	transport.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSubmitterService_Submit_RejectsBeforeNetwork(t *testing.T) {
	transport := new(MockFeedTransport)
	repo := new(MockFeedSubmissionRepository)
	service := newSubmitter(transport, repo)
	ctx := context.Background()

	_, err := service.Submit(ctx, feeds.FeedType("_POST_BOGUS_DATA_"), []*feeds.Node{feeds.NewNode()})
	assert.ErrorIs(t, err, feeds.ErrInvalidFeedType)

	_, err = service.Submit(ctx, feeds.FeedTypeInventory, nil)
	assert.ErrorIs(t, err, feeds.ErrInvalidRecordValue)

	invalid := []*feeds.Node{feeds.NewNode().Set("SKU", nil)}
	_, err = service.Submit(ctx, feeds.FeedTypeInventory, invalid)
	assert.ErrorIs(t, err, feeds.ErrInvalidRecordValue)

	transport.AssertNotCalled(t, "SubmitFeed", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitterService_Submit_TransportError(t *testing.T) {
	transport := new(MockFeedTransport)
	repo := new(MockFeedSubmissionRepository)
	service := newSubmitter(transport, repo)

	transport.On("SubmitFeed", mock.Anything, feeds.FeedTypeInventory, mock.Anything).
		Return(nil, feeds.ErrTransportUnavailable)

	records := []*feeds.Node{feeds.NewNode().Set("SKU", feeds.String("A"))}
	outcome, err := service.Submit(context.Background(), feeds.FeedTypeInventory, records)
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, feeds.ErrTransportUnavailable)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitterService_Submit_MalformedReceiptIsNotAFailure(t *testing.T) {
	transport := new(MockFeedTransport)
	repo := new(MockFeedSubmissionRepository)
	service := newSubmitter(transport, repo)

	transport.On("SubmitFeed", mock.Anything, feeds.FeedTypePrices, mock.Anything).
		Return(nil, feeds.ErrMalformedReceipt)

	records := []*feeds.Node{feeds.NewNode().Set("SKU", feeds.String("A"))}
	outcome, err := service.Submit(context.Background(), feeds.FeedTypePrices, records)
	require.NoError(t, err)

	assert.False(t, outcome.Recorded)
	assert.Nil(t, outcome.Submission)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitterService_Submit_CreateFailureDegrades(t *testing.T) {
	transport := new(MockFeedTransport)
	repo := new(MockFeedSubmissionRepository)
	service := newSubmitter(transport, repo)

	receipt := &feeds.SubmitReceipt{SubmissionID: "777", ProcessingStatus: feeds.StatusSubmitted}
	transport.On("SubmitFeed", mock.Anything, feeds.FeedTypeInventory, mock.Anything).Return(receipt, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	records := []*feeds.Node{feeds.NewNode().Set("SKU", feeds.String("A"))}
	outcome, err := service.Submit(context.Background(), feeds.FeedTypeInventory, records)
	require.NoError(t, err)

	// The feed is already on the remote side; the caller must not re-send
	assert.False(t, outcome.Recorded)
	assert.Equal(t, "777", outcome.SubmissionID)
	assert.Nil(t, outcome.Submission)
}

func TestSubmitterService_TypedWrappers(t *testing.T) {
	transport := new(MockFeedTransport)
	repo := new(MockFeedSubmissionRepository)
	service := newSubmitter(transport, repo)
	ctx := context.Background()

	receipt := &feeds.SubmitReceipt{SubmissionID: "1", ProcessingStatus: feeds.StatusSubmitted}
	transport.On("SubmitFeed", mock.Anything, feeds.FeedTypeInventory, mock.MatchedBy(func(body []byte) bool {
		return strings.Contains(string(body), "<Quantity>5</Quantity>")
	})).Return(receipt, nil).Once()
	transport.On("SubmitFeed", mock.Anything, feeds.FeedTypeOrderAcknowledgement, mock.MatchedBy(func(body []byte) bool {
		return strings.Contains(string(body), "<AmazonOrderID>111-222</AmazonOrderID>")
	})).Return(receipt, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	outcome, err := service.SubmitInventory(ctx, []feeds.InventoryMessage{{SKU: "A", Quantity: 5}})
	require.NoError(t, err)
	assert.True(t, outcome.Recorded)

	outcome, err = service.SubmitOrderAcknowledgements(ctx, []feeds.OrderAcknowledgementMessage{{
		MarketplaceOrderID: "111-222",
		MerchantOrderID:    "ORD-1",
		StatusCode:         "Success",
	}})
	require.NoError(t, err)
	assert.True(t, outcome.Recorded)

	transport.AssertExpectations(t)
}
