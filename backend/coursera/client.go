// Package coursera fetches and normalizes the public Coursera catalog.
package coursera

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrNotFound is returned when the upstream has no such course.
	ErrNotFound = errors.New("coursera: course not found")
	// ErrUnavailable wraps every other upstream failure.
	ErrUnavailable = errors.New("coursera: upstream unavailable")
)

const breakerName = "coursera-api"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Retry    RetryConfig
}

// Client talks to the courses.v1 endpoint. Responses are cached and calls
// go through a circuit breaker so a failing upstream is not hammered.
type Client struct {
	baseURL  string
	http     *http.Client
	retry    RetryConfig
	cache    Cache
	cacheTTL time.Duration
	breaker  *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a client. A nil cache disables caching.
func NewClient(cfg Config, cache Cache) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			var herr *HTTPError
			if errors.As(err, &herr) {
				return herr.StatusCode < 500 && herr.StatusCode != http.StatusTooManyRequests
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
			breakerState.Set(stateValue(to))
		},
	})

	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout},
		retry:    cfg.Retry,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		breaker:  breaker,
	}
}

// ListCourses fetches one page of courses.v1. A non-empty query runs the
// upstream search.
func (c *Client) ListCourses(ctx context.Context, start, limit int, query string) (*Page, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", "search")
		params.Set("query", query)
	}
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "/courses.v1", params)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return &page, nil
}

// GetCourse fetches a single course by its upstream id.
func (c *Client) GetCourse(ctx context.Context, id string) (*RawCourse, error) {
	body, err := c.get(ctx, "/courses.v1/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	if len(page.Elements) == 0 {
		return nil, ErrNotFound
	}
	return &page.Elements[0], nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, target); ok {
			cacheLookups.WithLabelValues("hit").Inc()
			return body, nil
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return getWithRetry(ctx, c.http, target, c.retry)
	})
	if err != nil {
		var herr *HTTPError
		switch {
		case errors.As(err, &herr) && herr.StatusCode == http.StatusNotFound:
			upstreamRequests.WithLabelValues("success").Inc()
			return nil, ErrNotFound
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			upstreamRequests.WithLabelValues("rejected").Inc()
		default:
			upstreamRequests.WithLabelValues("failure").Inc()
		}
		log.Error().Err(err).Str("url", target).Msg("coursera request failed")
		return nil, errors.Join(ErrUnavailable, err)
	}

	upstreamRequests.WithLabelValues("success").Inc()
	if c.cache != nil && c.cacheTTL > 0 {
		c.cache.Set(ctx, target, body, c.cacheTTL)
	}
	return body, nil
}
