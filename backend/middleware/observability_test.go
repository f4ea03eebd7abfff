package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newObservedApp wires logging and metrics in the same order as main.
func newObservedApp(buf *bytes.Buffer) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(LoggingMiddleware(zerolog.New(buf)))
	app.Use(MetricsMiddleware())
	app.Get("/observed/validation", func(c *fiber.Ctx) error {
		return utils.NewValidationError("title is required")
	})
	app.Get("/observed/missing", func(c *fiber.Ctx) error {
		return repository.ErrNotFound
	})
	app.Get("/observed/conflict", func(c *fiber.Ctx) error {
		return &repository.DuplicateError{Field: "email"}
	})
	app.Get("/observed/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogAndMetricsUseHandledStatus(t *testing.T) {
	cases := []struct {
		path   string
		status int
		level  string
	}{
		{"/observed/validation", fiber.StatusBadRequest, "warn"},
		{"/observed/missing", fiber.StatusNotFound, "warn"},
		{"/observed/conflict", fiber.StatusConflict, "warn"},
		{"/observed/ok", fiber.StatusOK, "info"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var buf bytes.Buffer
			app := newObservedApp(&buf)
			counter := httpRequestsTotal.WithLabelValues("GET", tc.path, strconv.Itoa(tc.status))
			before := testutil.ToFloat64(counter)

			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			entry := lastLogLine(t, &buf)
			assert.Equal(t, float64(tc.status), entry["status"])
			assert.Equal(t, tc.level, entry["level"])
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestErrorHandlerRunsOnceBehindObservers(t *testing.T) {
	var buf bytes.Buffer
	app := newObservedApp(&buf)

	status, body := get(t, app, "/observed/validation", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, []interface{}{"title is required"}, body["errors"])

	status, body = get(t, app, "/observed/conflict", "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "email already exists", body["message"])
}
