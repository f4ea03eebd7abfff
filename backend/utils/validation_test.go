package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	FullName string `json:"full_name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email_address"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager learner"`
}

type video struct {
	Link string `json:"youtubeLink" validate:"required,youtube"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(signup{FullName: "Ada", Email: "ada@example.com", Role: "learner"}))

	err := ValidateStruct(signup{FullName: "A", Email: "not-an-email", Role: "owner"})
	require.Error(t, err)

	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{
		"full_name must be at least 2 characters long",
		"Please enter a valid email address",
		"role must be one of: admin, manager, learner",
	}, ve.Messages)
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(signup{})
	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Messages, "full_name is required")
	assert.Contains(t, ve.Messages, "email is required")
}

func TestYoutubeValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(video{Link: "https://www.youtube.com/watch?v=abc"}))
	assert.NoError(t, ValidateStruct(video{Link: "youtu.be/abc"}))
	assert.Error(t, ValidateStruct(video{Link: "https://vimeo.com/123"}))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("first.last-1@mail.example.org"))
	assert.False(t, IsValidEmail("user@example.toolong"))
	assert.False(t, IsValidEmail("user@@example.com"))
}
