package feeds

import (
	"context"

	"github.com/google/uuid"
)

// SubmissionFilter defines filter criteria for listing submissions
type SubmissionFilter struct {
	// FeedType filters by feed type (optional)
	FeedType *FeedType
	// Status filters by processing status (optional)
	Status *SubmissionStatus
	// Page number (1-indexed)
	Page int
	// Page size
	PageSize int
	// SortBy is the column to order by; implementations whitelist the
	// accepted values and fall back to created_at
	SortBy string
	// SortOrder is "ASC" or "DESC" (default DESC)
	SortOrder string
}

// FeedSubmissionReader defines the interface for reading submissions
type FeedSubmissionReader interface {
	// FindByID finds a submission by its local id, details included
	FindByID(ctx context.Context, id uuid.UUID) (*FeedSubmission, error)

	// FindBySubmissionID finds a submission by its remote id
	FindBySubmissionID(ctx context.Context, submissionID string) (*FeedSubmission, error)

	// FindPending returns all submissions in a pending status, optionally
	// restricted to the given remote ids. Details are not loaded; the
	// reconciler only appends to them.
	FindPending(ctx context.Context, submissionIDs []string) ([]FeedSubmission, error)

	// FindAll lists submissions matching the filter, newest first
	FindAll(ctx context.Context, filter SubmissionFilter) ([]FeedSubmission, int64, error)
}

// FeedSubmissionWriter defines the interface for persisting submissions
type FeedSubmissionWriter interface {
	// Create persists a new submission record
	Create(ctx context.Context, submission *FeedSubmission) error

	// UpdateIfPending persists the submission's status, counters and any
	// new detail rows, but only while the stored row is still in a pending
	// status. When a concurrent pass already moved the row to a terminal
	// status it returns shared.ErrConcurrencyConflict and writes nothing,
	// which keeps reconciliation idempotent.
	UpdateIfPending(ctx context.Context, submission *FeedSubmission) error
}

// FeedSubmissionRepository defines the full submission persistence interface
type FeedSubmissionRepository interface {
	FeedSubmissionReader
	FeedSubmissionWriter
}
