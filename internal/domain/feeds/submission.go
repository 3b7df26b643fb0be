package feeds

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the processing status of a feed submission. Values
// are the remote system's wire statuses.
type SubmissionStatus string

const (
	// StatusSubmitted is the initial status assigned when a feed is accepted
	StatusSubmitted SubmissionStatus = "_SUBMITTED_"
	// StatusInProcess indicates the remote processor picked the feed up
	StatusInProcess SubmissionStatus = "_IN_PROGRESS_"
	// StatusDone is the terminal status of a processed feed
	StatusDone SubmissionStatus = "_DONE_"
	// StatusCancelled is the terminal status of a cancelled feed; no
	// processing report exists for cancellations
	StatusCancelled SubmissionStatus = "_CANCELLED_"
)

// IsValid returns true if the status is a known wire value
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusInProcess, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the wire value of the status
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsPending returns true while the submission awaits remote processing
func (s SubmissionStatus) IsPending() bool {
	return s == StatusSubmitted || s == StatusInProcess
}

// IsTerminal returns true for statuses from which no further transition occurs
func (s SubmissionStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// PendingStatuses returns the statuses the reconciler operates over
func PendingStatuses() []SubmissionStatus {
	return []SubmissionStatus{StatusSubmitted, StatusInProcess}
}

// FeedSubmission tracks the lifecycle of one outbound feed batch. It is
// created right after a successful transport submit and mutated only by the
// reconciler; the message counters stay nil until a detailed processing
// report is applied.
type FeedSubmission struct {
	ID               uuid.UUID
	FeedType         FeedType
	SubmissionID     string
	ProcessingStatus SubmissionStatus

	MessagesProcessed  *int64
	MessagesSuccessful *int64
	MessagesErrored    *int64
	MessagesWarned     *int64

	// Details holds the per-record outcomes; populated once, when a
	// detailed result is applied, and immutable afterward
	Details []FeedSubmissionDetail

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedSubmissionDetail is one per-record outcome owned by its parent
// submission; it is destroyed only when the parent is destroyed.
type FeedSubmissionDetail struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	MessageID    string
	ResultCode   string
	MessageCode  string
	Description  string
	// AdditionalInfo carries the open diagnostic key/value pairs from the
	// report's AdditionalInfo block
	AdditionalInfo map[string]string
	CreatedAt      time.Time
}

// NewFeedSubmission creates a submission record for a feed the transport
// just accepted. An invalid or empty remote status falls back to Submitted.
func NewFeedSubmission(feedType FeedType, submissionID string, status SubmissionStatus) (*FeedSubmission, error) {
	if !feedType.IsValid() {
		return nil, ErrInvalidFeedType
	}
	if submissionID == "" {
		return nil, ErrMissingSubmissionID
	}
	if !status.IsValid() {
		status = StatusSubmitted
	}
	now := time.Now()
	return &FeedSubmission{
		ID:               uuid.New(),
		FeedType:         feedType,
		SubmissionID:     submissionID,
		ProcessingStatus: status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// MarkInProcess advances a submitted feed to in-process. Only pending
// submissions transition.
func (s *FeedSubmission) MarkInProcess() error {
	if !s.ProcessingStatus.IsPending() {
		return ErrSubmissionNotPending
	}
	s.ProcessingStatus = StatusInProcess
	s.UpdatedAt = time.Now()
	return nil
}

// MarkCancelled moves a pending submission to the Cancelled terminal
// status. Cancellations carry no processing report, so no counters or
// details are recorded.
func (s *FeedSubmission) MarkCancelled() error {
	if !s.ProcessingStatus.IsPending() {
		return ErrSubmissionNotPending
	}
	s.ProcessingStatus = StatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// ApplyResult moves a pending submission to the observed terminal status
// and records the parsed report: all four counters plus one detail row per
// record outcome, preserving report order.
func (s *FeedSubmission) ApplyResult(status SubmissionStatus, result *SubmissionResult) error {
	if !s.ProcessingStatus.IsPending() {
		return ErrSubmissionNotPending
	}
	if !status.IsTerminal() {
		return ErrInvalidStatus
	}
	now := time.Now()
	s.ProcessingStatus = status
	s.MessagesProcessed = &result.MessagesProcessed
	s.MessagesSuccessful = &result.MessagesSuccessful
	s.MessagesErrored = &result.MessagesErrored
	s.MessagesWarned = &result.MessagesWarned
	for _, d := range result.Details {
		s.Details = append(s.Details, FeedSubmissionDetail{
			ID:             uuid.New(),
			SubmissionID:   s.ID,
			MessageID:      d.MessageID,
			ResultCode:     d.ResultCode,
			MessageCode:    d.MessageCode,
			Description:    d.Description,
			AdditionalInfo: d.AdditionalInfo,
			CreatedAt:      now,
		})
	}
	s.UpdatedAt = now
	return nil
}
