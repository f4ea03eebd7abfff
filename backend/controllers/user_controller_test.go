package controllers_test

import (
	"testing"

	"learngenie/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersAdminOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	admin := env.seedUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	manager := env.seedUser(t, "Manager", "manager@example.com", models.RoleManager)
	env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)

	users := env.doList(t, "GET", "/api/users", admin.Token)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.NotContains(t, u.(map[string]interface{}), "password")
	}

	managers := env.doList(t, "GET", "/api/users/managers", admin.Token)
	require.Len(t, managers, 1)
	assert.Equal(t, "manager@example.com", managers[0].(map[string]interface{})["email"])

	resp, _ := env.do(t, "GET", "/api/users", nil, manager.Token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/api/users", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, "GET", "/api/users", nil, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetUserAndRetrieveName(t *testing.T) {
	env := newTestEnv(t, nil)
	ada := env.seedUser(t, "Ada", "ada@example.com", models.RoleLearner)
	bob := env.seedUser(t, "Bob", "bob@example.com", models.RoleLearner)

	resp, result := env.do(t, "GET", "/api/users/"+ada.ID.String(), nil, ada.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada", result["user"].(map[string]interface{})["full_name"])

	resp, _ = env.do(t, "GET", "/api/users/"+ada.ID.String(), nil, bob.Token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, result = env.do(t, "POST", "/api/retrieve_name/"+bob.ID.String(), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bob", result["full_name"])

	resp, _ = env.do(t, "GET", "/api/retrieve_name/"+uuid.NewString(), nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t, nil)
	ada := env.seedUser(t, "Ada", "ada@example.com", models.RoleLearner)
	env.seedUser(t, "Bob", "bob@example.com", models.RoleLearner)
	path := "/api/users/" + ada.ID.String()

	resp, _ := env.do(t, "PUT", path, map[string]string{"email": "BOB@example.com"}, ada.Token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = env.do(t, "PUT", path, map[string]string{"new_password": "another123"}, ada.Token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, "PUT", path, map[string]string{"current_password": "wrong", "new_password": "another123"}, ada.Token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, result := env.do(t, "PUT", path, map[string]string{
		"full_name":        "Ada Lovelace",
		"current_password": testPassword,
		"new_password":     "another123",
	}, ada.Token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada Lovelace", result["user"].(map[string]interface{})["full_name"])

	resp, _ = env.do(t, "POST", "/api/login", map[string]string{"email": "ada@example.com", "password": testPassword}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp, _ = env.do(t, "POST", "/api/login", map[string]string{"email": "ada@example.com", "password": "another123"}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
