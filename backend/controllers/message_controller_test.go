package controllers_test

import (
	"testing"

	"learngenie/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	env := newTestEnv(t, nil)
	admin := env.seedUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	learner := env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)

	resp, _ := env.do(t, "POST", "/api/messages", map[string]string{"name": "Ada", "email": "ada@example.com"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, "POST", "/api/messages", map[string]string{
		"name": "Ada", "email": "ada-at-example", "number": "12345", "message": "Hello",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	for _, text := range []string{"First", "Second"} {
		resp, result := env.do(t, "POST", "/api/messages", map[string]string{
			"name": "Ada", "email": "ada@example.com", "number": "12345", "message": text,
		}, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Feedback saved successfully", result["message"])
	}

	resp, _ = env.do(t, "GET", "/api/messages", nil, learner.Token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, result := env.do(t, "GET", "/api/messages", nil, admin.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	feedbacks := result["feedbacks"].([]interface{})
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "Second", feedbacks[0].(map[string]interface{})["message"])
}
