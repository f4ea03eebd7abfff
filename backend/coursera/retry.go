package coursera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPError is returned for a non-2xx upstream reply.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 300 {
		body = body[:300]
	}
	return fmt.Sprintf("coursera: GET %s status=%d body=%s", e.URL, e.StatusCode, body)
}

// RetryConfig controls how often a failed upstream call is repeated.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   300 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// getWithRetry issues GET url until it succeeds, fails permanently or runs
// out of attempts. 429, 408 and 5xx replies and transient network errors are
// retried with exponential backoff, honouring Retry-After.
func getWithRetry(ctx context.Context, client *http.Client, url string, cfg RetryConfig) ([]byte, error) {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		var retryAfter time.Duration
		resp, err := client.Do(req)
		if err == nil {
			var body []byte
			body, err = readAndClose(resp.Body)
			if err == nil {
				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					return body, nil
				}
				err = &HTTPError{URL: url, StatusCode: resp.StatusCode, Body: body}
				if !retryableStatus(resp.StatusCode) {
					return nil, err
				}
				retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
			} else if !retryableNetErr(err) {
				return nil, err
			}
		} else if !retryableNetErr(err) {
			return nil, err
		}

		lastErr = err
		if attempt < cfg.MaxAttempts {
			upstreamRetries.Inc()
			if err := sleepBackoff(ctx, attempt, cfg, retryAfter); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
}

func retryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "broken pipe") || strings.Contains(msg, "eof")
}

func sleepBackoff(ctx context.Context, attempt int, cfg RetryConfig, retryAfter time.Duration) error {
	sleep := retryAfter
	if sleep <= 0 {
		sleep = cfg.BaseDelay << (attempt - 1)
		if cfg.BaseDelay > 0 {
			sleep += time.Duration(rand.Int63n(int64(cfg.BaseDelay)))
		}
	}
	if cfg.MaxDelay > 0 && sleep > cfg.MaxDelay {
		sleep = cfg.MaxDelay
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseRetryAfter reads a Retry-After value in seconds or as an HTTP date.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
