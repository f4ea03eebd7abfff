package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterRedis answers INCR, EXPIRE, TTL and DEL in memory so the limiter's
// Redis path runs without a server.
type counterRedis struct {
	mu         sync.Mutex
	start      int64
	failExpire bool
	counts     map[string]int64
	ttls       map[string]time.Duration
	calls      []string
}

func newCounterRedis(t *testing.T, fake *counterRedis) *redis.Client {
	t.Helper()
	fake.counts = map[string]int64{}
	fake.ttls = map[string]time.Duration{}

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(fake)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func (f *counterRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *counterRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *counterRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.calls = append(f.calls, cmd.Name())
		key, _ := cmd.Args()[1].(string)

		switch cmd.Name() {
		case "incr":
			if _, ok := f.counts[key]; !ok {
				f.counts[key] = f.start
			}
			f.counts[key]++
			cmd.(*redis.IntCmd).SetVal(f.counts[key])
		case "expire":
			if f.failExpire {
				return errors.New("READONLY You can't write against a read only replica")
			}
			f.ttls[key] = time.Duration(cmd.Args()[2].(int64)) * time.Second
			cmd.(*redis.BoolCmd).SetVal(true)
		case "ttl":
			ttl, ok := f.ttls[key]
			if !ok {
				ttl = -1
			}
			cmd.(*redis.DurationCmd).SetVal(ttl)
		case "del":
			delete(f.counts, key)
			delete(f.ttls, key)
			cmd.(*redis.IntCmd).SetVal(1)
		}
		return nil
	}
}

func (f *counterRedis) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func limitedApp(client *redis.Client, limit int, window time.Duration) *fiber.App {
	app := fiber.New()
	app.Get("/login", NewRateLimiter(client).Limit("login", limit, window), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRateLimiterRedisWindow(t *testing.T) {
	fake := &counterRedis{}
	app := limitedApp(newCounterRedis(t, fake), 1, 45*time.Second)

	status, _ := get(t, app, "/login", "")
	require.Equal(t, fiber.StatusOK, status)

	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "45", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, 1, fake.called("expire"))
}

func TestRateLimiterResetsCounterWhenExpireFails(t *testing.T) {
	fake := &counterRedis{failExpire: true}
	app := limitedApp(newCounterRedis(t, fake), 1, time.Minute)

	for i := 0; i < 3; i++ {
		status, _ := get(t, app, "/login", "")
		assert.Equal(t, fiber.StatusOK, status)
	}
	assert.Equal(t, 3, fake.called("del"))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Empty(t, fake.counts)
}

func TestRateLimiterRepairsCounterWithoutExpiry(t *testing.T) {
	// Counter already past the limit and never given a TTL.
	fake := &counterRedis{start: 5}
	app := limitedApp(newCounterRedis(t, fake), 1, 30*time.Second)

	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, 1, fake.called("expire"))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Len(t, fake.ttls, 1)
}
