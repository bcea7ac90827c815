// Package polygon is a minimal client for the Polygon.io options snapshot API.
package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"options-contracts-api/internal/metrics"
)

const (
	// DefaultBaseURL is the public Polygon.io API host
	DefaultBaseURL = "https://api.polygon.io"

	endpointChainSnapshot    = "chain_snapshot"
	endpointContractSnapshot = "contract_snapshot"

	// maxResponseBody caps how much of a provider response is read
	maxResponseBody = 8 << 20
)

// ClientConfig configures a provider client
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues snapshot requests against the provider
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a new provider client
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	rawBase := cfg.BaseURL
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimRight(rawBase, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid provider base URL %q", rawBase)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// ListChainSnapshot fetches snapshots for the contracts of one underlying
// that match the filters, ordered by ascending expiration date.
func (c *Client) ListChainSnapshot(ctx context.Context, params *ChainParams) (*ChainSnapshotResponse, error) {
	if params == nil || params.Underlying == "" {
		return nil, fmt.Errorf("%w: underlying ticker is required", ErrInvalidRequest)
	}

	query := url.Values{}
	query.Set("apiKey", params.APIKey)
	if params.ContractType != "" {
		query.Set("contract_type", params.ContractType)
	}
	if params.ExpirationGTE != "" {
		query.Set("expiration_date.gte", params.ExpirationGTE)
	}
	if params.ExpirationLTE != "" {
		query.Set("expiration_date.lte", params.ExpirationLTE)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	query.Set("order", "asc")
	query.Set("sort", "expiration_date")

	var resp ChainSnapshotResponse
	if err := c.get(ctx, endpointChainSnapshot, []string{"v3", "snapshot", "options", params.Underlying}, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetContractSnapshot fetches the snapshot of a single option contract
func (c *Client) GetContractSnapshot(ctx context.Context, underlying, optionTicker, apiKey string) (*ContractSnapshotResponse, error) {
	if underlying == "" || optionTicker == "" {
		return nil, fmt.Errorf("%w: underlying and option ticker are required", ErrInvalidRequest)
	}

	query := url.Values{}
	query.Set("apiKey", apiKey)

	var resp ContractSnapshotResponse
	if err := c.get(ctx, endpointContractSnapshot, []string{"v3", "snapshot", "options", underlying, optionTicker}, query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs one GET and decodes a 2xx JSON body into out
func (c *Client) get(ctx context.Context, endpoint string, segments []string, query url.Values, out interface{}) error {
	reqURL, err := c.buildURL(segments, query)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	fields := logrus.Fields{
		"endpoint": endpoint,
		"path":     req.URL.Path,
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	metrics.ProviderLatency.WithLabelValues(endpoint).Observe(latency.Seconds())

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(endpoint, metrics.StatusClass(0)).Inc()
		cause := err
		// url.Error embeds the full URL, including the api key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			cause = urlErr.Err
		}
		logrus.WithFields(fields).WithError(cause).Error("Provider request failed")
		return fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, endpoint, cause)
	}
	defer resp.Body.Close()

	metrics.ProviderRequestsTotal.WithLabelValues(endpoint, metrics.StatusClass(resp.StatusCode)).Inc()
	fields["status_code"] = resp.StatusCode
	fields["latency_ms"] = float64(latency.Nanoseconds()) / 1000000

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Failed to read provider response")
		return fmt.Errorf("%w: %s: reading body: %v", ErrProviderUnavailable, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(endpoint, resp.StatusCode, body)
		logrus.WithFields(fields).WithField("response", apiErr.Body).Warn("Provider returned error status")
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithFields(fields).WithError(err).Error("Failed to decode provider response")
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, endpoint, err)
	}

	logrus.WithFields(fields).Debug("Provider request completed")
	return nil
}

// buildURL appends escaped path segments to the base URL. Segments are never
// path-cleaned, so dot segments are rejected instead of resolved.
func (c *Client) buildURL(segments []string, query url.Values) (string, error) {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("%w: invalid path segment %q", ErrInvalidRequest, segment)
		}
		// Colons in option tickers are percent-encoded as well
		escaped[i] = strings.ReplaceAll(url.PathEscape(segment), ":", "%3A")
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Close releases idle keep-alive connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
