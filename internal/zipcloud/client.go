// Package zipcloud looks up Japanese postal codes against the zipcloud search API.
package zipcloud

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"zipcode-api/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the zipcloud search endpoint.
const DefaultBaseURL = "https://zipcloud.ibsnet.co.jp/api/search"

// Client issues zipcloud lookups. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	baseURL string
	rootCAs *x509.CertPool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint. An empty baseURL is ignored and
// the client keeps DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithRootCAs replaces the platform root store used to verify the server.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *Client) {
		c.rootCAs = pool
	}
}

// NewClient creates a client for DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClient = NewClient()

// FetchAddress looks up postalCode with the default client.
func FetchAddress(ctx context.Context, postalCode string) (*models.Address, error) {
	return defaultClient.Lookup(ctx, postalCode)
}

// BaseURL returns the endpoint the client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Lookup returns the first address registered for postalCode. It returns nil, nil when
// the service knows no address for the code. Failures are *TransportError,
// *GatewayError or *DecodeError.
func (c *Client) Lookup(ctx context.Context, postalCode string) (*models.Address, error) {
	start := time.Now()

	reqURL, err := c.requestURL(postalCode)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	client, transport := newHTTPClient(c.rootCAs)
	defer transport.CloseIdleConnections()

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	log.Debug().
		Str("zipcode", postalCode).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("zipcloud lookup")

	if resp.StatusCode != http.StatusOK {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Reason: string(body)}
	}

	var payload *models.LookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if payload == nil {
		return nil, &DecodeError{Err: errors.New("response body is null")}
	}

	return payload.First(), nil
}

func (c *Client) requestURL(postalCode string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = "zipcode=" + url.QueryEscape(postalCode) + "&limit=1"
	return u.String(), nil
}
