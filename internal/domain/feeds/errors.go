package feeds

import "errors"

var (
	// ErrInvalidRecordValue indicates a record tree with a shape the codec
	// cannot encode; a caller contract violation, rejected before any
	// network call and never retried
	ErrInvalidRecordValue = errors.New("feeds: invalid record value")

	// ErrInvalidFeedType indicates an unknown feed type wire tag
	ErrInvalidFeedType = errors.New("feeds: invalid feed type")

	// ErrInvalidStatus indicates an unknown submission status wire value
	ErrInvalidStatus = errors.New("feeds: invalid submission status")

	// ErrSubmissionNotPending indicates a state transition attempted on a
	// submission that already reached a terminal status
	ErrSubmissionNotPending = errors.New("feeds: submission is not pending")

	// ErrMissingSubmissionID indicates a submission without a remote id
	ErrMissingSubmissionID = errors.New("feeds: remote submission id is required")

	// ErrTransportUnavailable indicates the remote endpoint could not be
	// reached; always retryable
	ErrTransportUnavailable = errors.New("feeds: transport temporarily unavailable")

	// ErrRequestFailed indicates the remote endpoint rejected a request
	ErrRequestFailed = errors.New("feeds: transport request failed")

	// ErrMalformedReceipt indicates a submit acknowledgment missing its
	// expected fields. The feed was already accepted by the remote side, so
	// callers treat this as a local bookkeeping miss, not a submit failure.
	ErrMalformedReceipt = errors.New("feeds: malformed submit acknowledgment")

	// ErrResultNotReady indicates the remote side has not produced the
	// processing report yet (surfaced by the transport as a not-found
	// condition); retryable on the next reconciliation cycle
	ErrResultNotReady = errors.New("feeds: submission result not ready")
)

// RemoteProcessingError is returned when a result document carries an
// explicit Error element instead of a processing report. It propagates out
// of the result parser and is never absorbed there; the reconciler treats it
// as transient and retries the submission on the next cycle.
type RemoteProcessingError struct {
	Message string
}

// Error implements the error interface
func (e *RemoteProcessingError) Error() string {
	return "feeds: remote processing error: " + e.Message
}
