// Package backend is the client for the collaborator backend that holds the
// primary copy of the audit index pointer.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"payzoll-audit/internal/core/ports"
	"payzoll-audit/pkg/apperror"

	"github.com/rs/zerolog"
)

const pointerPath = "/blobs/audit-index"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PointerClient implements ports.PointerStore against GET/POST /blobs/audit-index.
type PointerClient struct {
	baseURL    string
	httpClient HTTPClient
	timeout    time.Duration
	token      func() (string, error)
	log        zerolog.Logger
}

// Option is a functional option for configuring a PointerClient.
type Option func(*PointerClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *PointerClient) { c.httpClient = hc }
}

// WithTimeout bounds every backend call.
func WithTimeout(d time.Duration) Option {
	return func(c *PointerClient) { c.timeout = d }
}

// WithStaticToken sends a fixed bearer token.
func WithStaticToken(token string) Option {
	return func(c *PointerClient) {
		c.token = func() (string, error) { return token, nil }
	}
}

// WithServiceToken mints a bearer token for subject on every call.
func WithServiceToken(tokens ports.TokenService, subject string) Option {
	return func(c *PointerClient) {
		c.token = func() (string, error) {
			tok, _, err := tokens.Generate(subject)
			return tok, err
		}
	}
}

// NewPointerClient creates a backend pointer client rooted at baseURL.
func NewPointerClient(baseURL string, log zerolog.Logger, opts ...Option) *PointerClient {
	c := &PointerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		timeout:    5 * time.Second,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the tier name.
func (c *PointerClient) Name() string {
	return "backend"
}

type blobRef struct {
	BlobID string `json:"blobId"`
}

// pointerBody is accepted bare ({blobId}) or inside the API envelopes, where
// a success carries it in data and a conflict in details.
type pointerBody struct {
	BlobID  string   `json:"blobId"`
	Data    *blobRef `json:"data"`
	Details *blobRef `json:"details"`
}

func (b pointerBody) blobID() string {
	switch {
	case b.BlobID != "":
		return b.BlobID
	case b.Data != nil:
		return b.Data.BlobID
	case b.Details != nil:
		return b.Details.BlobID
	}
	return ""
}

type updateRequest struct {
	BlobID         string  `json:"blobId"`
	ExpectedBlobID *string `json:"expectedBlobId,omitempty"`
}

// Resolve returns the backend's pointer, or "" when the backend has none.
func (c *PointerClient) Resolve(ctx context.Context) (string, error) {
	body, status, err := c.call(ctx, http.MethodGet, nil)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusNotFound || status == http.StatusNoContent:
		return "", nil
	case status < 200 || status >= 300:
		return "", apperror.ErrPointerUnavailable(fmt.Errorf("backend returned %d", status))
	}

	var resp pointerBody
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", apperror.ErrPointerUnavailable(fmt.Errorf("decoding backend pointer: %w", err))
	}
	return resp.blobID(), nil
}

// CompareAndSwap posts next with expected as the precondition.
func (c *PointerClient) CompareAndSwap(ctx context.Context, expected, next string) error {
	return c.post(ctx, updateRequest{BlobID: next, ExpectedBlobID: &expected})
}

// Store posts blobID without a precondition.
func (c *PointerClient) Store(ctx context.Context, blobID string) error {
	return c.post(ctx, updateRequest{BlobID: blobID})
}

func (c *PointerClient) post(ctx context.Context, req updateRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return apperror.ErrPointerUnavailable(err)
	}
	body, status, err := c.call(ctx, http.MethodPost, payload)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusConflict:
		var resp pointerBody
		_ = json.Unmarshal(body, &resp)
		expected := ""
		if req.ExpectedBlobID != nil {
			expected = *req.ExpectedBlobID
		}
		return apperror.ErrPointerConflict(expected, resp.blobID())
	case status < 200 || status >= 300:
		c.log.Warn().Int("status", status).Msg("backend: pointer update rejected")
		return apperror.ErrPointerUnavailable(fmt.Errorf("backend returned %d", status))
	}
	return nil
}

func (c *PointerClient) call(ctx context.Context, method string, payload []byte) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pointerPath, reqBody)
	if err != nil {
		return nil, 0, apperror.ErrPointerUnavailable(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		tok, err := c.token()
		if err != nil {
			return nil, 0, apperror.ErrPointerUnavailable(fmt.Errorf("minting backend token: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Msg("backend: pointer call failed")
		return nil, 0, apperror.ErrPointerUnavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, resp.StatusCode, apperror.ErrPointerUnavailable(fmt.Errorf("reading backend response: %w", err))
	}
	return body, resp.StatusCode, nil
}
