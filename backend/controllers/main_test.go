package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learngenie/backend/config"
	"learngenie/backend/coursera"
	"learngenie/backend/middleware"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/routes"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testPassword = "password123"

type testEnv struct {
	app   *fiber.App
	store *repository.Store
	cfg   *config.Config
}

type testUser struct {
	ID    uuid.UUID
	Email string
	Token string
}

func newTestEnv(t *testing.T, client *coursera.Client) *testEnv {
	t.Helper()

	cfg := &config.Config{
		DBDriver:        config.DriverMemory,
		JWTSecret:       "testsecret",
		TokenTTL:        time.Hour,
		LoginRateLimit:  0,
		LoginRateWindow: time.Minute,
	}
	store := repository.NewMemoryStore()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		UnescapePath: true,
	})
	app.Use(requestid.New())
	routes.SetupRoutes(app, store, cfg, routes.Deps{Coursera: client})

	return &testEnv{app: app, store: store, cfg: cfg}
}

// seedUser stores a user with testPassword and returns a token for it.
func (e *testEnv) seedUser(t *testing.T, name, email, role string) testUser {
	t.Helper()

	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	user := models.User{FullName: name, Email: email, Password: hash, Role: role}
	require.NoError(t, e.store.Users.Create(context.Background(), &user))

	token, err := utils.GenerateJWTToken(user.ID, user.Role, e.cfg)
	require.NoError(t, err)
	return testUser{ID: user.ID, Email: user.Email, Token: token}
}

func (e *testEnv) seedCourse(t *testing.T, creator uuid.UUID, title, category, price string) models.Course {
	t.Helper()

	course := models.Course{
		Title:       title,
		Description: "A practical introduction to " + title,
		Category:    category,
		Duration:    "4 weeks",
		Price:       price,
		YoutubeLink: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		CreatedBy:   creator,
	}
	require.NoError(t, e.store.Courses.Create(context.Background(), &course))
	return course
}

// do sends a request and decodes a JSON object reply. A nil body sends no
// payload.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonData)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &result))
	}
	return resp, result
}

// doList is do for routes that reply with a JSON array.
func (e *testEnv) doList(t *testing.T, method, path, token string) []interface{} {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}
