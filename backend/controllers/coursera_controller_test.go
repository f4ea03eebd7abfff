package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"learngenie/backend/coursera"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upstreamCourses = []coursera.RawCourse{
	{ID: "c1", Name: "Machine Learning", Slug: "machine-learning", Description: "Supervised learning with Python",
		Categories: []string{"Data Science"}, EnrolledCount: 500, PrimaryLanguages: []string{"English"}, Level: "Intermediate"},
	{ID: "c2", Name: "Watercolour Basics", Slug: "watercolour", ShortDescription: "Painting for beginners",
		Categories: []string{"Arts"}, EnrolledCount: 900, PrimaryLanguages: []string{"French"}},
	{ID: "c3", Name: "Deep Learning", Slug: "deep-learning", Description: "Neural networks",
		Categories: []string{"Data Science", "Computer Science"}, EnrolledCount: 100, InstructorIDs: []string{"7"}},
}

// newCourseraClient serves upstreamCourses from a fake courses.v1 endpoint.
// A failing server answers every request with 503.
func newCourseraClient(t *testing.T, failing bool) *coursera.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if id, ok := strings.CutPrefix(r.URL.Path, "/api/courses.v1/"); ok {
			var elements []coursera.RawCourse
			for _, c := range upstreamCourses {
				if c.ID == id {
					elements = append(elements, c)
				}
			}
			_ = json.NewEncoder(w).Encode(coursera.Page{Elements: elements})
			return
		}
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		page := coursera.Page{Paging: coursera.Paging{Total: len(upstreamCourses)}}
		if start < len(upstreamCourses) {
			page.Elements = upstreamCourses[start:]
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(srv.Close)

	return coursera.NewClient(coursera.Config{
		BaseURL:  srv.URL + "/api",
		Timeout:  time.Second,
		CacheTTL: time.Minute,
		Retry:    coursera.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}, coursera.NewMemoryCache())
}

func TestCourseraRoutes(t *testing.T) {
	env := newTestEnv(t, newCourseraClient(t, false))

	resp, result := env.do(t, "GET", "/api/coursera/courses", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), result["total"])
	first := result["courses"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Coursera", first["platform"])
	assert.Equal(t, "https://coursera.org/learn/machine-learning", first["url"])

	resp, result = env.do(t, "GET", "/api/coursera/courses/c2", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	course := result["course"].(map[string]interface{})
	assert.Equal(t, "Painting for beginners", course["description"])
	assert.Equal(t, "Beginner", course["level"])

	resp, _ = env.do(t, "GET", "/api/coursera/courses/missing", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/api/coursera/search", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, result = env.do(t, "GET", "/api/coursera/search?q=learning&limit=2", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "learning", result["searchQuery"])
	pagination := result["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, float64(3), pagination["totalResults"])

	resp, result = env.do(t, "GET", "/api/coursera/categories/data%20science", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, result["courses"], 2)
	assert.Equal(t, "data science", result["category"])

	resp, result = env.do(t, "GET", "/api/coursera/categories/Computer%20Science", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, result["courses"], 1)

	resp, result = env.do(t, "GET", "/api/coursera/categories/all", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, result["courses"], 3)

	resp, result = env.do(t, "GET", "/api/coursera/popular?limit=1", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	popular := result["courses"].([]interface{})
	require.Len(t, popular, 1)
	assert.Equal(t, "Watercolour Basics", popular[0].(map[string]interface{})["title"])

	resp, result = env.do(t, "GET", "/api/coursera/stats", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), result["totalCourses"])
	assert.Equal(t, float64(1500), result["totalEnrollments"])

	resp, result = env.do(t, "GET", "/api/coursera-courses", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, result["courses"], 3)
}

func TestCourseraUpstreamFailure(t *testing.T) {
	env := newTestEnv(t, newCourseraClient(t, true))

	resp, result := env.do(t, "GET", "/api/coursera/courses", nil, "")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to fetch Coursera courses", result["message"])
}
