// Package gemini is a typed client for the generative language API's
// generateContent method. It owns the wire model, the string codecs for the
// API's closed enumerations and the error taxonomy of a scoring call.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// Failure kinds of a GenerateContent call.
var (
	ErrTransport       = errors.New("gemini: transport failure")
	ErrHTTPStatus      = errors.New("gemini: non-2xx status")
	ErrDeserialization = errors.New("gemini: response does not match schema")
)

// TransportError wraps a network or connection failure. The request URL is
// never included, since it carries the API key.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gemini: POST %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError is returned for any non-2xx response. Body holds the
// response body as diagnostic text.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

// DeserializationError is returned when a 2xx body cannot be decoded into a
// GenerateContentResponse, including unknown enum wire strings.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("gemini: decode response: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error        { return e.Err }
func (e *DeserializationError) Is(target error) bool { return target == ErrDeserialization }

// ClientConfig holds the settings for a Client.
type ClientConfig struct {
	BaseURL string        // https://generativelanguage.googleapis.com
	Model   string        // gemini-pro
	APIKey  string        // sent as the ?key= query parameter
	Timeout time.Duration // per call; zero disables the client-side bound

	// HTTPClient overrides the default http.Client, mainly for tests.
	HTTPClient *http.Client
}

// Client performs generateContent calls. It is safe for concurrent use.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client, filling unset fields with defaults.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    hc,
		logger:  logger.Named("gemini"),
	}
}

// Endpoint returns the generateContent URL without the API key.
func (c *Client) Endpoint() string {
	return c.baseURL + "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
}

// GenerateContent posts req and decodes the response. Errors are one of
// *TransportError, *HTTPStatusError or *DeserializationError. No retry is
// attempted.
func (c *Client) GenerateContent(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.Endpoint()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?"+url.Values{"key": {c.apiKey}}.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := c.http.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("generateContent",
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, Body: string(data)}
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DeserializationError{Err: err}
	}
	return &out, nil
}
