package mws

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/feeds"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: &Config{SellerID: "A1SELLER", AccessKey: "AKIATEST", SecretKey: "secret"},
		},
		{
			name:    "missing seller id",
			config:  &Config{AccessKey: "AKIATEST", SecretKey: "secret"},
			wantErr: ErrConfigMissingSellerID,
		},
		{
			name:    "missing access key",
			config:  &Config{SellerID: "A1SELLER", SecretKey: "secret"},
			wantErr: ErrConfigMissingAccessKey,
		},
		{
			name:    "missing secret key",
			config:  &Config{SellerID: "A1SELLER", AccessKey: "AKIATEST"},
			wantErr: ErrConfigMissingSecretKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				// Check defaults are set
				assert.Equal(t, DefaultEndpoint, tt.config.Endpoint)
				assert.Equal(t, tt.config.SellerID, tt.config.MerchantID)
				assert.True(t, tt.config.TimeoutSeconds > 0)
			}
		})
	}
}

func TestConfig_Sign(t *testing.T) {
	config := &Config{SecretKey: "test_secret"}

	params := map[string]string{
		"Action":    "SubmitFeed",
		"SellerId":  "A1SELLER",
		"Timestamp": "2026-01-01T00:00:00Z",
	}
	sig1 := config.Sign("POST", "mws.example.com", "/Feeds/2009-01-01", params)
	sig2 := config.Sign("POST", "mws.example.com", "/Feeds/2009-01-01", params)
	assert.NotEmpty(t, sig1)
	assert.Equal(t, sig1, sig2)

	params["Action"] = "GetFeedSubmissionList"
	sig3 := config.Sign("POST", "mws.example.com", "/Feeds/2009-01-01", params)
	assert.NotEqual(t, sig1, sig3)
}

func TestPercentEncode(t *testing.T) {
	assert.Equal(t, "a%20b", percentEncode("a b"))
	assert.Equal(t, "~tilde", percentEncode("~tilde"))
	assert.Equal(t, "a%2Fb%3Dc", percentEncode("a/b=c"))
}

// ---------------------------------------------------------------------------
// Client Tests
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	config := &Config{
		SellerID:       "A1SELLER",
		AccessKey:      "AKIATEST",
		SecretKey:      "secret",
		MarketplaceIDs: []string{"MKT1"},
		Endpoint:       serverURL,
	}
	client, err := NewClient(config, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestClient_SubmitFeed(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`<SubmitFeedResponse>
		  <SubmitFeedResult>
		    <FeedSubmissionInfo>
		      <FeedSubmissionId>2291326430</FeedSubmissionId>
		      <FeedType>_POST_INVENTORY_AVAILABILITY_DATA_</FeedType>
		      <FeedProcessingStatus>_SUBMITTED_</FeedProcessingStatus>
		    </FeedSubmissionInfo>
		  </SubmitFeedResult>
		</SubmitFeedResponse>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	body := []byte(`<AmazonEnvelope></AmazonEnvelope>`)
	receipt, err := client.SubmitFeed(context.Background(), feeds.FeedTypeInventory, body)
	require.NoError(t, err)

	assert.Equal(t, "2291326430", receipt.SubmissionID)
	assert.Equal(t, feeds.StatusSubmitted, receipt.ProcessingStatus)
	assert.Equal(t, body, gotBody)

	assert.Equal(t, "SubmitFeed", gotQuery["Action"][0])
	assert.Equal(t, "_POST_INVENTORY_AVAILABILITY_DATA_", gotQuery["FeedType"][0])
	assert.Equal(t, "A1SELLER", gotQuery["SellerId"][0])
	assert.Equal(t, "MKT1", gotQuery["MarketplaceIdList.Id.1"][0])
	assert.NotEmpty(t, gotQuery["Signature"][0])
	assert.NotEmpty(t, gotQuery["ContentMD5Value"][0])
}

func TestClient_SubmitFeed_MissingSubmissionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<SubmitFeedResponse><SubmitFeedResult></SubmitFeedResult></SubmitFeedResponse>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.SubmitFeed(context.Background(), feeds.FeedTypeInventory, []byte(`<x/>`))
	assert.ErrorIs(t, err, feeds.ErrMalformedReceipt)
}

func TestClient_SubmitFeed_RequestRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<ErrorResponse>
		  <Error>
		    <Type>Sender</Type>
		    <Code>AccessDenied</Code>
		    <Message>Access to Feeds.SubmitFeed is denied</Message>
		  </Error>
		</ErrorResponse>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.SubmitFeed(context.Background(), feeds.FeedTypeInventory, []byte(`<x/>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, feeds.ErrRequestFailed)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestClient_SubmitFeed_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // no listener anymore

	client := newTestClient(t, server.URL)
	_, err := client.SubmitFeed(context.Background(), feeds.FeedTypeInventory, []byte(`<x/>`))
	assert.ErrorIs(t, err, feeds.ErrTransportUnavailable)
}

func TestClient_ListSubmissionStatuses(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`<GetFeedSubmissionListResponse>
		  <GetFeedSubmissionListResult>
		    <HasNext>false</HasNext>
		    <FeedSubmissionInfo>
		      <FeedSubmissionId>100</FeedSubmissionId>
		      <FeedProcessingStatus>_DONE_</FeedProcessingStatus>
		    </FeedSubmissionInfo>
		    <FeedSubmissionInfo>
		      <FeedSubmissionId>101</FeedSubmissionId>
		      <FeedProcessingStatus>_IN_PROGRESS_</FeedProcessingStatus>
		    </FeedSubmissionInfo>
		  </GetFeedSubmissionListResult>
		</GetFeedSubmissionListResponse>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	statuses, err := client.ListSubmissionStatuses(context.Background(), []string{"100", "101", "102"})
	require.NoError(t, err)

	assert.Equal(t, map[string]feeds.SubmissionStatus{
		"100": feeds.StatusDone,
		"101": feeds.StatusInProcess,
	}, statuses)

	assert.Equal(t, "GetFeedSubmissionList", gotQuery["Action"][0])
	assert.Equal(t, "100", gotQuery["FeedSubmissionIdList.Id.1"][0])
	assert.Equal(t, "102", gotQuery["FeedSubmissionIdList.Id.3"][0])
	assert.Equal(t, "3", gotQuery["MaxCount"][0])
}

func TestClient_GetSubmissionResult(t *testing.T) {
	report := `<AmazonEnvelope><Message><ProcessingReport><StatusCode>Complete</StatusCode></ProcessingReport></Message></AmazonEnvelope>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GetFeedSubmissionResult", r.URL.Query().Get("Action"))
		assert.Equal(t, "100", r.URL.Query().Get("FeedSubmissionId"))
		w.Write([]byte(report))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	raw, err := client.GetSubmissionResult(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, report, raw)
}

func TestClient_GetSubmissionResult_NotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetSubmissionResult(context.Background(), "100")
	assert.ErrorIs(t, err, feeds.ErrResultNotReady)
}

func TestClient_EnvelopeHeader(t *testing.T) {
	config := &Config{SellerID: "A1SELLER", AccessKey: "k", SecretKey: "s", MerchantID: "M_OVERRIDE"}
	client, err := NewClient(config, zap.NewNop())
	require.NoError(t, err)

	header := client.EnvelopeHeader()
	assert.Equal(t, "M_OVERRIDE", header.MerchantID)
	assert.Equal(t, feeds.DefaultDocumentVersion, header.DocumentVersion)
}
