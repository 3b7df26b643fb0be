package mws

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// Config holds configuration for the marketplace feed-processing API
type Config struct {
	// SellerID is the merchant's seller account identifier
	SellerID string
	// AccessKey is the API access key id
	AccessKey string
	// SecretKey is the secret used to sign requests
	SecretKey string
	// MerchantID identifies the merchant inside feed envelopes; defaults
	// to SellerID when empty
	MerchantID string
	// MarketplaceIDs are the marketplaces feeds apply to
	MarketplaceIDs []string
	// Endpoint is the API base URL (region specific)
	Endpoint string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// DefaultEndpoint is the North America API endpoint
	DefaultEndpoint = "https://mws.amazonservices.com"
	// apiVersion is the Feeds API version the client speaks
	apiVersion = "2009-01-01"
)

// Errors for API configuration
var (
	ErrConfigMissingSellerID  = errors.New("mws: seller id is required")
	ErrConfigMissingAccessKey = errors.New("mws: access key is required")
	ErrConfigMissingSecretKey = errors.New("mws: secret key is required")
)

// NewConfig creates a new API configuration with defaults
func NewConfig(sellerID, accessKey, secretKey string) *Config {
	return &Config{
		SellerID:       sellerID,
		AccessKey:      accessKey,
		SecretKey:      secretKey,
		Endpoint:       DefaultEndpoint,
		TimeoutSeconds: 30,
	}
}

// Validate validates the API configuration and fills defaults
func (c *Config) Validate() error {
	if c.SellerID == "" {
		return ErrConfigMissingSellerID
	}
	if c.AccessKey == "" {
		return ErrConfigMissingAccessKey
	}
	if c.SecretKey == "" {
		return ErrConfigMissingSecretKey
	}
	if c.MerchantID == "" {
		c.MerchantID = c.SellerID
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign computes the request signature: base64 HMAC-SHA256 over the
// canonical request string (verb, host, path and the sorted
// percent-encoded query).
func (c *Config) Sign(method, host, path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(params[k]))
	}

	toSign := strings.Join([]string{method, host, path, strings.Join(pairs, "&")}, "\n")
	h := hmac.New(sha256.New, []byte(c.SecretKey))
	h.Write([]byte(toSign))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// percentEncode applies the stricter RFC 3986 encoding the signature
// scheme requires; url.QueryEscape emits "+" for spaces and leaves "~"
// alone, both wrong here
func percentEncode(s string) string {
	encoded := url.QueryEscape(s)
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	encoded = strings.ReplaceAll(encoded, "%7E", "~")
	return encoded
}
