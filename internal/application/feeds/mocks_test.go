package feeds

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellerbridge/backend/internal/domain/feeds"
	"github.com/stretchr/testify/mock"
)

// MockFeedTransport is a mock implementation of feeds.FeedTransport
type MockFeedTransport struct {
	mock.Mock
}

func (m *MockFeedTransport) SubmitFeed(ctx context.Context, feedType feeds.FeedType, body []byte) (*feeds.SubmitReceipt, error) {
	args := m.Called(ctx, feedType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feeds.SubmitReceipt), args.Error(1)
}

func (m *MockFeedTransport) ListSubmissionStatuses(ctx context.Context, submissionIDs []string) (map[string]feeds.SubmissionStatus, error) {
	args := m.Called(ctx, submissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]feeds.SubmissionStatus), args.Error(1)
}

func (m *MockFeedTransport) GetSubmissionResult(ctx context.Context, submissionID string) (string, error) {
	args := m.Called(ctx, submissionID)
	return args.String(0), args.Error(1)
}

// MockFeedSubmissionRepository is a mock implementation of feeds.FeedSubmissionRepository
type MockFeedSubmissionRepository struct {
	mock.Mock
}

func (m *MockFeedSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*feeds.FeedSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feeds.FeedSubmission), args.Error(1)
}

func (m *MockFeedSubmissionRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*feeds.FeedSubmission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feeds.FeedSubmission), args.Error(1)
}

func (m *MockFeedSubmissionRepository) FindPending(ctx context.Context, submissionIDs []string) ([]feeds.FeedSubmission, error) {
	args := m.Called(ctx, submissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feeds.FeedSubmission), args.Error(1)
}

func (m *MockFeedSubmissionRepository) FindAll(ctx context.Context, filter feeds.SubmissionFilter) ([]feeds.FeedSubmission, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]feeds.FeedSubmission), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedSubmissionRepository) Create(ctx context.Context, submission *feeds.FeedSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockFeedSubmissionRepository) UpdateIfPending(ctx context.Context, submission *feeds.FeedSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}
