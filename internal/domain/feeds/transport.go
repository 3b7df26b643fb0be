package feeds

import "context"

// SubmitReceipt is the acknowledgment the remote side returns for an
// accepted feed
type SubmitReceipt struct {
	// SubmissionID is the opaque remote identifier of the submission
	SubmissionID string
	// ProcessingStatus is the remote status at acceptance time, normally
	// Submitted
	ProcessingStatus SubmissionStatus
}

// FeedTransport is the port to the marketplace feed-processing API. It is
// defined in the domain layer; the concrete HTTP adapter lives in the
// infrastructure layer. Authentication, signing, retries and rate limiting
// are the adapter's concern.
type FeedTransport interface {
	// SubmitFeed sends a feed body for asynchronous processing. A receipt
	// with a missing submission id is reported as ErrMalformedReceipt; the
	// feed was still accepted remotely in that case.
	SubmitFeed(ctx context.Context, feedType FeedType, body []byte) (*SubmitReceipt, error)

	// ListSubmissionStatuses returns the current remote status for each of
	// the given submission ids in one bulk call. Ids the remote side does
	// not recognize yet are absent from the map.
	ListSubmissionStatuses(ctx context.Context, submissionIDs []string) (map[string]SubmissionStatus, error)

	// GetSubmissionResult fetches the raw processing-report document for a
	// submission. While the report is not ready the remote side answers
	// with a not-found condition, surfaced as ErrResultNotReady.
	GetSubmissionResult(ctx context.Context, submissionID string) (string, error)
}
