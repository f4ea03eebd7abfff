package utils

import (
	"testing"
	"time"

	"learngenie/backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	id := uuid.New()

	token, err := GenerateJWTToken(id, "manager", cfg)
	require.NoError(t, err)

	claims, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestJWTRejectsOtherSecret(t *testing.T) {
	token, err := GenerateJWTToken(uuid.New(), "learner", &config.Config{JWTSecret: "a", TokenTTL: time.Hour})
	require.NoError(t, err)

	_, err = ParseJWTToken(token, &config.Config{JWTSecret: "b", TokenTTL: time.Hour})
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "a", TokenTTL: -time.Minute}
	token, err := GenerateJWTToken(uuid.New(), "learner", cfg)
	require.NoError(t, err)

	_, err = ParseJWTToken(token, cfg)
	assert.Error(t, err)
}
