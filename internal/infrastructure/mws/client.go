package mws

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sellerbridge/backend/internal/domain/feeds"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const feedsPath = "/Feeds/" + apiVersion

// Client implements feeds.FeedTransport against the marketplace
// feed-processing HTTP API
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger

	// now is replaceable for deterministic request timestamps in tests
	now func() time.Time
}

// NewClient creates a new API client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
		now:    time.Now,
	}, nil
}

// EnvelopeHeader returns the envelope header feeds submitted through this
// client must carry
func (c *Client) EnvelopeHeader() feeds.EnvelopeHeader {
	return feeds.EnvelopeHeader{
		DocumentVersion: feeds.DefaultDocumentVersion,
		MerchantID:      c.config.MerchantID,
	}
}

// SubmitFeed sends a feed body for asynchronous processing
func (c *Client) SubmitFeed(ctx context.Context, feedType feeds.FeedType, body []byte) (*feeds.SubmitReceipt, error) {
	params := map[string]string{
		"Action":   "SubmitFeed",
		"FeedType": feedType.String(),
	}
	for i, id := range c.config.MarketplaceIDs {
		params["MarketplaceIdList.Id."+strconv.Itoa(i+1)] = id
	}

	sum := md5.Sum(body)
	params["ContentMD5Value"] = base64.StdEncoding.EncodeToString(sum[:])

	respBody, _, err := c.doRequest(ctx, params, body)
	if err != nil {
		return nil, err
	}

	var resp SubmitFeedResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: unparseable submit response: %v", feeds.ErrMalformedReceipt, err)
	}

	info := resp.Result.FeedSubmissionInfo
	if info.FeedSubmissionID == "" {
		return nil, fmt.Errorf("%w: submit response carries no submission id", feeds.ErrMalformedReceipt)
	}

	c.logger.Debug("feed submitted",
		zap.String("feed_type", feedType.String()),
		zap.String("submission_id", info.FeedSubmissionID),
		zap.String("remote_status", info.FeedProcessingStatus))
	return &feeds.SubmitReceipt{
		SubmissionID:     info.FeedSubmissionID,
		ProcessingStatus: feeds.SubmissionStatus(info.FeedProcessingStatus),
	}, nil
}

// ListSubmissionStatuses returns the remote status of each given
// submission id in one GetFeedSubmissionList call
func (c *Client) ListSubmissionStatuses(ctx context.Context, submissionIDs []string) (map[string]feeds.SubmissionStatus, error) {
	params := map[string]string{
		"Action": "GetFeedSubmissionList",
	}
	for i, id := range submissionIDs {
		params["FeedSubmissionIdList.Id."+strconv.Itoa(i+1)] = id
	}
	if n := len(submissionIDs); n > 0 {
		params["MaxCount"] = strconv.Itoa(n)
	}

	respBody, _, err := c.doRequest(ctx, params, nil)
	if err != nil {
		return nil, err
	}

	var resp GetFeedSubmissionListResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: unparseable submission list: %v", feeds.ErrRequestFailed, err)
	}

	statuses := make(map[string]feeds.SubmissionStatus, len(resp.Result.FeedSubmissionInfo))
	for _, info := range resp.Result.FeedSubmissionInfo {
		if info.FeedSubmissionID == "" {
			continue
		}
		statuses[info.FeedSubmissionID] = feeds.SubmissionStatus(info.FeedProcessingStatus)
	}
	return statuses, nil
}

// GetSubmissionResult fetches the raw processing-report document for a
// submission. A not-found answer means the report does not exist yet and
// is surfaced as feeds.ErrResultNotReady.
func (c *Client) GetSubmissionResult(ctx context.Context, submissionID string) (string, error) {
	params := map[string]string{
		"Action":           "GetFeedSubmissionResult",
		"FeedSubmissionId": submissionID,
	}

	respBody, status, err := c.doRequest(ctx, params, nil)
	if err != nil {
		if status == http.StatusNotFound {
			return "", feeds.ErrResultNotReady
		}
		return "", err
	}
	return string(respBody), nil
}

// doRequest signs and performs one API call. The returned status code is
// set whenever an HTTP response was received, error or not.
func (c *Client) doRequest(ctx context.Context, params map[string]string, body []byte) ([]byte, int, error) {
	params["AWSAccessKeyId"] = c.config.AccessKey
	params["SellerId"] = c.config.SellerID
	params["SignatureMethod"] = "HmacSHA256"
	params["SignatureVersion"] = "2"
	params["Timestamp"] = c.now().UTC().Format(time.RFC3339)
	params["Version"] = apiVersion

	endpoint, err := url.Parse(c.config.Endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("mws: invalid endpoint: %w", err)
	}
	params["Signature"] = c.config.Sign(http.MethodPost, endpoint.Host, feedsPath, params)

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	requestURL := c.config.Endpoint + feedsPath + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("mws: failed to create request: %w", err)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "text/xml")
	} else {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", feeds.ErrTransportUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("mws: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, c.requestError(params["Action"], resp.StatusCode, respBody)
	}
	return respBody, resp.StatusCode, nil
}

// requestError turns a rejected request into a descriptive error, using
// the error document when one was returned
func (c *Client) requestError(action string, status int, body []byte) error {
	var errResp ErrorResponse
	if err := xml.Unmarshal(body, &errResp); err == nil {
		if apiErr := errResp.FirstError(); apiErr != nil {
			return fmt.Errorf("%w: %s: %s - %s", feeds.ErrRequestFailed, action, apiErr.Code, apiErr.Message)
		}
	}
	return fmt.Errorf("%w: %s: HTTP %d", feeds.ErrRequestFailed, action, status)
}
