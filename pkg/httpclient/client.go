// Package httpclient provides the outbound HTTP client used to pull the
// vehicle catalog from its upstream source. The client bounds every call
// with a timeout, retries transient failures with exponential backoff,
// and can be wrapped with a circuit breaker so a misbehaving upstream
// does not get hammered.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Config controls timeouts, retries and connection pooling for a Client.
type Config struct {
	// Timeout bounds a single request, including connection setup and
	// reading the full response body.
	Timeout time.Duration

	// MaxRetries is how many times a failed request is retried. Zero
	// means a single attempt with no retries.
	MaxRetries int

	// RetryWaitMin is the wait before the first retry. Each further
	// retry doubles the wait.
	RetryWaitMin time.Duration

	// RetryWaitMax caps the wait between retries.
	RetryWaitMax time.Duration

	// MaxConnsPerHost limits concurrent connections to a single host.
	MaxConnsPerHost int
}

// Client is an HTTP client with bounded retries. It is safe for
// concurrent use.
type Client struct {
	hc  *http.Client
	cfg Config
}

// New builds a Client from cfg with its own tuned transport.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		hc: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		cfg: cfg,
	}
}

// Do executes req, retrying network errors and 5xx responses up to
// MaxRetries times. A 5xx response that survives all retries is returned
// as-is, not as an error. Retries resend the request unchanged, which
// assumes a bodyless request; the catalog source only issues GETs.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	attempts := c.cfg.MaxRetries + 1
	for attempt := 1; ; attempt++ {
		resp, err := c.hc.Do(req)
		if err == nil {
			if !retryableStatus(resp.StatusCode) || attempt == attempts {
				return resp, nil
			}
			drainAndClose(resp.Body)
		} else {
			if !retryable(ctx, err) || attempt == attempts {
				return nil, fmt.Errorf("request failed after %d attempts: %w", attempt, err)
			}
		}

		if werr := c.waitBeforeRetry(ctx, attempt); werr != nil {
			return nil, werr
		}
	}
}

// Get issues a GET request to url with retries.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build GET request: %w", err)
	}
	return c.Do(ctx, req)
}

// waitBeforeRetry sleeps for the backoff of the given just-failed attempt,
// doubling from RetryWaitMin and capping at RetryWaitMax. It returns early
// with the context's error if ctx is done first.
func (c *Client) waitBeforeRetry(ctx context.Context, attempt int) error {
	wait := c.cfg.RetryWaitMin << (attempt - 1)
	if wait > c.cfg.RetryWaitMax || wait <= 0 {
		wait = c.cfg.RetryWaitMax
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryableStatus reports whether a status code indicates a transient
// server-side failure. 501 is excluded: a Not Implemented endpoint will
// not start working on the next attempt.
func retryableStatus(status int) bool {
	return status >= 500 && status != http.StatusNotImplemented
}

// retryable reports whether a request error is worth retrying. Once the
// caller's context is done there is no point; otherwise network-level
// errors, including per-attempt timeouts, are considered transient.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// drainAndClose discards a bounded amount of the body before closing so
// the underlying connection can be reused for the retry.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	_ = body.Close()
}
