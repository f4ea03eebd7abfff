package controllers_test

import (
	"context"
	"testing"

	"learngenie/backend/models"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, result := env.do(t, "POST", "/api/insert", map[string]string{
		"full_name": "New User",
		"email":     "NewUser@Example.com",
		"password":  testPassword,
		"role":      "learner",
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User created successfully", result["message"])
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "newuser@example.com", user["email"])
	assert.NotContains(t, user, "password")

	stored, err := env.store.Users.GetByEmail(context.Background(), "newuser@example.com")
	require.NoError(t, err)
	assert.True(t, utils.IsBcryptHash(stored.Password))
}

func TestRegisterRejectsDuplicateEmailInAnyCase(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedUser(t, "Ada", "ada@example.com", models.RoleLearner)

	resp, result := env.do(t, "POST", "/api/insert", map[string]string{
		"full_name": "Ada Again",
		"email":     "ADA@example.com",
		"password":  testPassword,
		"role":      "learner",
	}, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User with this email already exists", result["message"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing fields", body: map[string]string{"email": "a@example.com"}},
		{name: "bad email", body: map[string]string{"full_name": "Ada", "email": "not-an-email", "password": testPassword, "role": "learner"}},
		{name: "short password", body: map[string]string{"full_name": "Ada", "email": "a@example.com", "password": "123", "role": "learner"}},
		{name: "unknown role", body: map[string]string{"full_name": "Ada", "email": "a@example.com", "password": testPassword, "role": "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := env.do(t, "POST", "/api/insert", tt.body, "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterPrivilegedRoleNeedsAdmin(t *testing.T) {
	env := newTestEnv(t, nil)
	admin := env.seedUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	learner := env.seedUser(t, "Learner", "learner@example.com", models.RoleLearner)

	body := map[string]string{
		"full_name": "Manager",
		"email":     "manager@example.com",
		"password":  testPassword,
		"role":      "manager",
	}

	resp, _ := env.do(t, "POST", "/api/insert", body, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, "POST", "/api/insert", body, learner.Token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, result := env.do(t, "POST", "/api/insert", body, admin.Token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "manager", result["user"].(map[string]interface{})["role"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedUser(t, "Test User", "test@example.com", models.RoleLearner)

	resp, result := env.do(t, "POST", "/api/login", map[string]string{
		"email":    "Test@Example.com",
		"password": testPassword,
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", result["message"])
	assert.NotEmpty(t, result["token"])

	user := result["user"].(map[string]interface{})
	assert.Equal(t, "Test User", user["full_name"])
	assert.Equal(t, "learner", user["role"])

	claims, err := utils.ParseJWTToken(result["token"].(string), env.cfg)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.UserID.String())
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedUser(t, "Test User", "test@example.com", models.RoleLearner)

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{name: "missing password", body: map[string]string{"email": "test@example.com"}, status: fiber.StatusBadRequest},
		{name: "malformed email", body: map[string]string{"email": "test", "password": testPassword}, status: fiber.StatusBadRequest},
		{name: "unknown email", body: map[string]string{"email": "nobody@example.com", "password": testPassword}, status: fiber.StatusUnauthorized},
		{name: "wrong password", body: map[string]string{"email": "test@example.com", "password": "wrong-password"}, status: fiber.StatusUnauthorized},
		{name: "role mismatch", body: map[string]string{"email": "test@example.com", "password": testPassword, "role": "Manager"}, status: fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := env.do(t, "POST", "/api/login", tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestLoginMigratesLegacyPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	legacy := models.User{FullName: "Old User", Email: "old@example.com", Password: "plain-secret", Role: models.RoleLearner}
	require.NoError(t, env.store.Users.Create(ctx, &legacy))

	resp, _ := env.do(t, "POST", "/api/login", map[string]string{"email": "old@example.com", "password": "plain-secret"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := env.store.Users.GetByID(ctx, legacy.ID)
	require.NoError(t, err)
	assert.True(t, utils.IsBcryptHash(stored.Password))

	resp, _ = env.do(t, "POST", "/api/login", map[string]string{"email": "old@example.com", "password": "plain-secret"}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCheckUser(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedUser(t, "Ada", "ada@example.com", models.RoleLearner)

	resp, result := env.do(t, "GET", "/api/check-user/ADA@example.com", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["exists"])

	resp, result = env.do(t, "GET", "/api/check-user/ada%40example.com", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["exists"])

	resp, result = env.do(t, "GET", "/api/check-user/ghost@example.com", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, result["exists"])
}
