package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/claudeutils/usage-tray/internal/config"
	"github.com/claudeutils/usage-tray/internal/constants"
)

// Client fetches usage and profile data from the Anthropic OAuth API.
type Client struct {
	httpClient *nethttp.Client
	creds      *config.CredentialSource
	usageURL   string
	profileURL string
	logger     zerolog.Logger
}

// NewClient creates an API client. Transient failures (5xx, connection
// resets) are retried a couple of times within the overall request
// timeout; 4xx responses are never retried because they are part of the
// error taxonomy the caller acts on.
func NewClient(creds *config.CredentialSource, logger zerolog.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &nethttp.Client{Timeout: constants.RequestTimeout}
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil
	// Hand the final response back once retries are exhausted. The
	// default handler discards it and returns a bare error, which would
	// turn a retried 5xx into a connection error instead of a status code.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		httpClient: retryClient.StandardClient(),
		creds:      creds,
		usageURL:   constants.UsageURL,
		profileURL: constants.ProfileURL,
		logger:     logger,
	}
}

// SetBaseURLs overrides the endpoint URLs. Used by tests.
func (c *Client) SetBaseURLs(usageURL, profileURL string) {
	c.usageURL = usageURL
	c.profileURL = profileURL
}

// FetchUsage retrieves the current usage quotas.
//
// Error taxonomy: ErrNoToken (no credential, no network call made),
// ErrConnection (no HTTP response or undecodable body), ErrAuthExpired
// (HTTP 401), *StatusError (any other non-200 status).
func (c *Client) FetchUsage(ctx context.Context) (*Usage, error) {
	var usage Usage
	if err := c.get(ctx, c.usageURL, &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

// FetchProfile retrieves the account profile, or nil when it cannot be
// fetched. Profile data is cosmetic (popup account section), so failures
// carry no taxonomy - they are logged and swallowed.
func (c *Client) FetchProfile(ctx context.Context) *Profile {
	var profile Profile
	if err := c.get(ctx, c.profileURL, &profile); err != nil {
		c.logger.Debug().Err(err).Msg("profile fetch failed")
		return nil
	}
	return &profile
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	headers, ok := c.creds.Headers()
	if !ok {
		return ErrNoToken
	}

	// One fixed budget for the whole call, retries included.
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == nethttp.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		return ErrAuthExpired
	case resp.StatusCode != nethttp.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrConnection, err)
	}
	return nil
}
