package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// ErrCircuitOpen is returned while the breaker rejects calls
var ErrCircuitOpen = resilience.ErrCircuitOpen

// StatusError is a non-2xx answer from the signal
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("signal answered %d: %s", e.Code, e.Message)
}

// Options configures a Client
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	RetryMin   time.Duration
	RetryMax   time.Duration
	// RateLimit caps outgoing calls per second; zero means unlimited
	RateLimit float64
	Breaker   resilience.Settings
}

// DefaultOptions returns the options used by crosswalk-press
func DefaultOptions() Options {
	return Options{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryMin:   200 * time.Millisecond,
		RetryMax:   2 * time.Second,
		RateLimit:  5,
		Breaker:    resilience.DefaultSettings(),
	}
}

// Client talks to a signal's status server
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// New creates a client for the status server at baseURL
func New(baseURL string, opts Options) *Client {
	// Retries and backoff live in the transport
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.MaxRetries
	retryClient.RetryWaitMin = opts.RetryMin
	retryClient.RetryWaitMax = opts.RetryMax
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", "crosswalk-press/1.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}

	breaker := opts.Breaker
	breaker.IsFailure = isFailure

	return &Client{
		resty:   restyClient,
		limiter: limiter,
		breaker: resilience.New("press", breaker),
	}
}

// Press pushes the button remotely
func (c *Client) Press(ctx context.Context) (*types.PressResponse, error) {
	return resilience.Do(ctx, c.breaker, func(ctx context.Context) (*types.PressResponse, error) {
		var out types.PressResponse
		if err := c.do(ctx, http.MethodPost, "/api/press", &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Status fetches the current signal snapshot
func (c *Client) Status(ctx context.Context) (*types.Status, error) {
	return resilience.Do(ctx, c.breaker, func(ctx context.Context) (*types.Status, error) {
		var out types.Status
		if err := c.do(ctx, http.MethodGet, "/api/status", &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// BreakerState returns the breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	headers := map[string]string{}
	tracing.InjectTraceContext(ctx, headers)

	var apiErr types.ErrorResponse
	resp, err := c.resty.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetResult(out).
		SetError(&apiErr).
		Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &StatusError{Code: resp.StatusCode(), Message: msg}
	}
	return nil
}

// checkRetry retries connection errors and 5xx, never 4xx
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// isFailure counts transport errors and server faults against the breaker.
// A client error such as a rate limit answer means the signal is healthy.
func isFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return true
}
