package mws

import "encoding/xml"

// ---------------------------------------------------------------------------
// Feeds API Response Types
// ---------------------------------------------------------------------------

// FeedSubmissionInfo describes one submission as the API reports it
type FeedSubmissionInfo struct {
	FeedSubmissionID     string `xml:"FeedSubmissionId"`
	FeedType             string `xml:"FeedType"`
	SubmittedDate        string `xml:"SubmittedDate"`
	FeedProcessingStatus string `xml:"FeedProcessingStatus"`
}

// SubmitFeedResponse is the response for the SubmitFeed action
type SubmitFeedResponse struct {
	XMLName xml.Name `xml:"SubmitFeedResponse"`
	Result  struct {
		FeedSubmissionInfo FeedSubmissionInfo `xml:"FeedSubmissionInfo"`
	} `xml:"SubmitFeedResult"`
	RequestID string `xml:"ResponseMetadata>RequestId"`
}

// GetFeedSubmissionListResponse is the response for the
// GetFeedSubmissionList action
type GetFeedSubmissionListResponse struct {
	XMLName xml.Name `xml:"GetFeedSubmissionListResponse"`
	Result  struct {
		HasNext            bool                 `xml:"HasNext"`
		FeedSubmissionInfo []FeedSubmissionInfo `xml:"FeedSubmissionInfo"`
	} `xml:"GetFeedSubmissionListResult"`
	RequestID string `xml:"ResponseMetadata>RequestId"`
}

// APIError is one error entry of an ErrorResponse
type APIError struct {
	Type    string `xml:"Type"`
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

// ErrorResponse is the error document the API answers with on rejected
// requests
type ErrorResponse struct {
	XMLName   xml.Name   `xml:"ErrorResponse"`
	Errors    []APIError `xml:"Error"`
	RequestID string     `xml:"RequestID"`
}

// FirstError returns the first error entry, if any
func (r *ErrorResponse) FirstError() *APIError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}
