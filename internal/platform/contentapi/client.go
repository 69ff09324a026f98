package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single request when the caller does not configure one.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RPS limits outbound requests per second. Zero disables limiting.
	RPS float64
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var limiter *rate.Limiter
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}
	return &Client{
		httpClient: &http.Client{Transport: opts.Transport},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    timeout,
		limiter:    limiter,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ResolveURL turns an endpoint path into an absolute URL. Absolute URLs,
// such as pagination cursors, are returned unchanged.
func (c *Client) ResolveURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// Get issues a GET for ref (an endpoint path or an absolute URL) and returns
// the raw JSON body. Failures are *NetworkError, *HTTPError or *DecodeError;
// cancellation of ctx by the caller is returned as ctx.Err().
func (c *Client) Get(ctx context.Context, ref string) (json.RawMessage, error) {
	u := c.ResolveURL(ref)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &NetworkError{URL: u, Err: err}
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &NetworkError{URL: u, Err: fmt.Errorf("timeout after %s: %w", c.timeout, err)}
		}
		return nil, &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{URL: u, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{URL: u, Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if !json.Valid(body) {
		return nil, &DecodeError{URL: u, Err: errors.New("response is not valid JSON")}
	}
	return json.RawMessage(body), nil
}

// GetJSON is Get followed by decoding into target.
func (c *Client) GetJSON(ctx context.Context, ref string, target any) error {
	raw, err := c.Get(ctx, ref)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &DecodeError{URL: c.ResolveURL(ref), Err: err}
	}
	return nil
}

// errorMessage pulls a human message out of a DRF-style error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Detail
}
