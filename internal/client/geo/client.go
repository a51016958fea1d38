// Package geo consumes the external IP geolocation API and keeps the
// bounded local history of past lookups.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"ipscope/internal/domain/entity"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the geolocation service queried when none is
// configured.
const DefaultBaseURL = "https://ipinfo.io"

const (
	defaultSelfLookupMessage   = "Failed to fetch your IP geolocation."
	defaultSearchLookupMessage = "Failed to fetch geolocation for that IP."
)

// ipv4Pattern accepts exactly four dot-separated groups of 0-255 with no
// leading or trailing content.
var ipv4Pattern = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)$`)

// ErrInvalidIPv4 reports a locally rejected address; no network call is
// made for it.
var ErrInvalidIPv4 = errors.New("Invalid IPv4 format. Expected format: 123.45.67.89")

// ValidateIPv4 checks addr against the strict dotted-quad pattern.
func ValidateIPv4(addr string) error {
	if !ipv4Pattern.MatchString(addr) {
		return ErrInvalidIPv4
	}

	return nil
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the external geolocation API. The upstream is untrusted:
// every response field is optional and failures are normalized to a
// human-readable message.
type Client struct {
	baseURL string
	client  httpClient
}

// New builds a geo client. An empty baseURL selects DefaultBaseURL; a nil
// client selects http.DefaultClient.
func New(baseURL string, client httpClient) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{baseURL: baseURL, client: client}
}

// upstreamError is the error payload shape some upstreams nest the
// message in.
type upstreamError struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// LookupSelf fetches the geolocation of the caller's own address
// (GET {base}/geo).
func (c *Client) LookupSelf(ctx context.Context) (*entity.GeoRecord, error) {
	return c.fetch(ctx, c.baseURL+"/geo", defaultSelfLookupMessage)
}

// Lookup validates addr as a strict IPv4 dotted quad and fetches its
// geolocation (GET {base}/{ip}/geo). Invalid input fails locally.
func (c *Client) Lookup(ctx context.Context, addr string) (*entity.GeoRecord, error) {
	if err := ValidateIPv4(addr); err != nil {
		return nil, err
	}

	return c.fetch(ctx, fmt.Sprintf("%s/%s/geo", c.baseURL, addr), defaultSearchLookupMessage)
}

func (c *Client) fetch(ctx context.Context, url, fallback string) (*entity.GeoRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build lookup request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.New(normalizeMessage(nil, err, fallback))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body upstreamError
		_ = json.NewDecoder(resp.Body).Decode(&body)

		return nil, errors.New(normalizeMessage(&body, nil, fallback))
	}

	var record entity.GeoRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, errors.New(normalizeMessage(nil, err, fallback))
	}

	return &record, nil
}

// normalizeMessage is the explicit ordered fallback for lookup errors:
// nested API error message, then flat API message, then transport error,
// then the generic default.
func normalizeMessage(body *upstreamError, transportErr error, fallback string) string {
	if body != nil {
		if body.Error != nil && body.Error.Message != "" {
			return body.Error.Message
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if transportErr != nil {
		return transportErr.Error()
	}

	return fallback
}
