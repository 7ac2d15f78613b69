package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the classroom API root every template is relative to.
const DefaultBaseURL = "https://classroom.googleapis.com/v1"

// DefaultTimeout bounds a single HTTP attempt.
const DefaultTimeout = 30 * time.Second

// DefaultRetries is the number of extra attempts for transient failures.
const DefaultRetries = 2

// DefaultRetryWait is the initial backoff between attempts.
const DefaultRetryWait = 200 * time.Millisecond

// Client performs HTTP calls on behalf of Endpoint.Call.
//
// Client adds the bearer token from its TokenSource to every request,
// applies the request timeout, and retries transient failures (transport
// errors, 429, 5xx) with exponential backoff.
//
// Thread-safety: Client is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *resty.Client
	tokens   oauth2.TokenSource
	validate *validator.Validate
	logger   *slog.Logger
}

// clientConfig holds the configuration for a Client.
// This struct is unexported to enforce the functional options pattern.
type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	retries    int
	retryWait  time.Duration
	tokens     oauth2.TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		retries:   DefaultRetries,
		retryWait: DefaultRetryWait,
	}
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*clientConfig)

// WithBaseURL overrides DefaultBaseURL. An empty value is ignored.
func WithBaseURL(u string) ClientOption {
	return func(c *clientConfig) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the per-request timeout.
// A zero or negative duration is ignored (uses default).
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many extra attempts transient failures get.
// Setting to 0 disables retries. A negative value is ignored.
func WithRetries(n int) ClientOption {
	return func(c *clientConfig) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryWait sets the initial backoff between attempts.
func WithRetryWait(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.retryWait = d
		}
	}
}

// WithTokenSource sets the credential provider. Without one, requests are
// sent unauthenticated.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(c *clientConfig) {
		c.tokens = ts
	}
}

// WithHTTPClient sets the underlying *http.Client.
// This is useful for pointing the client at an httptest server.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...ClientOption) *Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		// resty sets the timeout on the client it wraps; keep the caller's untouched.
		hc := *cfg.httpClient
		rc = resty.NewWithClient(&hc)
	} else {
		rc = resty.New()
	}
	rc.SetTimeout(cfg.timeout).
		SetRetryCount(cfg.retries).
		SetRetryWaitTime(cfg.retryWait).
		SetRetryMaxWaitTime(cfg.retryWait*8).
		AddRetryCondition(isTransient).
		SetHeader("Accept", "application/json")

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  cfg.baseURL,
		http:     rc,
		tokens:   cfg.tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

// BaseURL returns the API root templates are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is the transport-neutral result handed back to Endpoint.Call.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// do issues one logical request (retries included).
// Non-2xx statuses and transport failures are returned as *RequestError.
func (c *Client) do(ctx context.Context, method, url string, query map[string]string, payload []byte) (*response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(query)

	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, &RequestError{Method: method, URL: url, Err: fmt.Errorf("obtain access token: %w", err)}
		}
		req.SetAuthToken(tok.AccessToken)
	}

	if payload != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	start := time.Now()
	resp, err := req.Execute(method, url)
	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	c.logger.Debug("classroom request",
		"method", method,
		"url", url,
		"status", status,
		"elapsed", time.Since(start),
	)

	if err != nil {
		return nil, &RequestError{Method: method, URL: url, StatusCode: status, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &RequestError{Method: method, URL: url, StatusCode: status, Body: resp.Body()}
	}

	return &response{
		StatusCode: status,
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// isTransient decides whether resty should retry an attempt.
// Context cancellation is final; other transport errors, 429 and 5xx are not.
func isTransient(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
