// Package walrus talks to a Walrus publisher (writes) and aggregator (reads).
package walrus

import (
	"bytes"
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

	"payzoll-audit/pkg/apperror"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultMaxBlobSize bounds blobs written and read through the client.
const DefaultMaxBlobSize = 8 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.BlobStore over the Walrus HTTP API.
type Client struct {
	publisherURL  string
	aggregatorURL string
	httpClient    HTTPClient
	timeout       time.Duration
	maxBlobSize   int64
	limiter       *rate.Limiter
	log           zerolog.Logger
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every publisher/aggregator call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxBlobSize overrides DefaultMaxBlobSize.
func WithMaxBlobSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBlobSize = n
		}
	}
}

// WithPublisherRate paces writes to rps requests per second. Zero disables pacing.
func WithPublisherRate(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a Walrus client.
func NewClient(publisherURL, aggregatorURL string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		publisherURL:  strings.TrimRight(publisherURL, "/"),
		aggregatorURL: strings.TrimRight(aggregatorURL, "/"),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		timeout:       15 * time.Second,
		maxBlobSize:   DefaultMaxBlobSize,
		log:           log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// putResponse covers both shapes the publisher answers with: a freshly
// registered blob, or one whose bytes were already certified.
type putResponse struct {
	NewlyCreated *struct {
		BlobObject struct {
			BlobID string `json:"blobId"`
		} `json:"blobObject"`
	} `json:"newlyCreated"`
	AlreadyCertified *struct {
		BlobID string `json:"blobId"`
	} `json:"alreadyCertified"`
}

func (r putResponse) blobID() string {
	if r.NewlyCreated != nil && r.NewlyCreated.BlobObject.BlobID != "" {
		return r.NewlyCreated.BlobObject.BlobID
	}
	if r.AlreadyCertified != nil {
		return r.AlreadyCertified.BlobID
	}
	return ""
}

// Put stores data for the given number of epochs and returns its blob ID.
func (c *Client) Put(ctx context.Context, data []byte, epochs int) (string, error) {
	if int64(len(data)) > c.maxBlobSize {
		return "", apperror.ErrStorage("put", fmt.Errorf("blob of %d bytes exceeds the %d byte limit", len(data), c.maxBlobSize))
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", apperror.ErrStorage("put", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.publisherURL + "/v1/blobs?epochs=" + strconv.Itoa(epochs)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", apperror.ErrStorage("put", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	body, status, err := c.do(req)
	if errors.Is(err, errTooLarge) {
		return "", apperror.ErrProtocol("publisher response " + err.Error())
	}
	if err != nil {
		c.log.Warn().Err(err).Int("epochs", epochs).Msg("walrus: put failed")
		return "", apperror.ErrStorage("put", err)
	}
	if status < 200 || status >= 300 {
		c.log.Warn().Int("status", status).Str("body", snippet(body)).Msg("walrus: publisher rejected blob")
		return "", apperror.ErrStorage("put", fmt.Errorf("publisher returned %d", status))
	}

	var resp putResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", apperror.ErrProtocol("publisher response is not JSON: " + err.Error())
	}
	blobID := resp.blobID()
	if blobID == "" {
		c.log.Error().Str("body", snippet(body)).Msg("walrus: no blob ID in publisher response")
		return "", apperror.ErrProtocol("publisher response carried no blob ID")
	}

	c.log.Debug().
		Str("blob_id", blobID).
		Int("bytes", len(data)).
		Int("epochs", epochs).
		Bool("already_certified", resp.NewlyCreated == nil).
		Dur("latency", time.Since(start)).
		Msg("walrus: blob stored")

	return blobID, nil
}

// Get fetches the bytes stored under blobID.
func (c *Client) Get(ctx context.Context, blobID string) ([]byte, error) {
	if blobID == "" {
		return nil, apperror.Validation("blob ID is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.aggregatorURL + "/v1/blobs/" + url.PathEscape(blobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.ErrStorage("get", err)
	}

	start := time.Now()
	body, status, err := c.do(req)
	if errors.Is(err, errTooLarge) {
		c.log.Error().Str("blob_id", blobID).Int64("limit", c.maxBlobSize).Msg("walrus: blob larger than the read limit")
		return nil, apperror.ErrProtocol(fmt.Sprintf("blob %s %v", blobID, err))
	}
	if err != nil {
		c.log.Warn().Err(err).Str("blob_id", blobID).Msg("walrus: get failed")
		return nil, apperror.ErrStorage("get", err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, apperror.ErrNotFound("Blob " + blobID)
	case status < 200 || status >= 300:
		c.log.Warn().Int("status", status).Str("blob_id", blobID).Msg("walrus: aggregator error")
		return nil, apperror.ErrStorage("get", fmt.Errorf("aggregator returned %d", status))
	}

	c.log.Debug().
		Str("blob_id", blobID).
		Int("bytes", len(body)).
		Dur("latency", time.Since(start)).
		Msg("walrus: blob fetched")

	return body, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	// One byte past the limit tells a full body from a cut one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBlobSize+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > c.maxBlobSize {
		return nil, resp.StatusCode, fmt.Errorf("%w of %d bytes", errTooLarge, c.maxBlobSize)
	}
	return body, resp.StatusCode, nil
}

var errTooLarge = errors.New("exceeds the read limit")

func snippet(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}
