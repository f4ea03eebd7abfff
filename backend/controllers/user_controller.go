package controllers

import (
	"errors"
	"strings"

	"learngenie/backend/config"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewUserController(store *repository.Store, cfg *config.Config) *UserController {
	return &UserController{Store: store, Cfg: cfg}
}

type UpdateUserRequest struct {
	FullName        *string `json:"full_name" example:"Ada Lovelace"`
	Email           *string `json:"email" example:"ada@example.com"`
	CurrentPassword *string `json:"current_password" example:"oldPassword123"`
	NewPassword     *string `json:"new_password" example:"newPassword123"`
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Security ApiKeyAuth
// @Router /users [get]
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Store.Users.List(c.UserContext(), "")
	if err != nil {
		return err
	}
	return c.JSON(nonNil(users))
}

// ListManagers godoc
// @Summary List all managers
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Security ApiKeyAuth
// @Router /users/managers [get]
func (uc *UserController) ListManagers(c *fiber.Ctx) error {
	managers, err := uc.Store.Users.List(c.UserContext(), models.RoleManager)
	if err != nil {
		return err
	}
	return c.JSON(nonNil(managers))
}

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := userParam(c, "id", "user ID")
	if err != nil {
		return err
	}
	user, err := uc.Store.Users.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user.Summary()})
}

// RetrieveName returns only the display name of a user.
func (uc *UserController) RetrieveName(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "user ID")
	if err != nil {
		return err
	}
	user, err := uc.Store.Users.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"full_name": user.FullName})
}

// UpdateUser godoc
// @Summary Update user profile or password
// @Description A password change needs both current_password and new_password.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param input body UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := userParam(c, "id", "user ID")
	if err != nil {
		return err
	}

	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	ctx := c.UserContext()
	user, err := uc.Store.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}

	// Password change
	if (input.CurrentPassword == nil) != (input.NewPassword == nil) {
		return utils.BadRequest(c, "Both current_password and new_password are required to change the password")
	}
	if input.CurrentPassword != nil {
		if ok, _ := utils.CheckPassword(user.Password, *input.CurrentPassword); !ok {
			return utils.BadRequest(c, "Current password is incorrect")
		}
		if len(*input.NewPassword) < 6 {
			return utils.NewValidationError("Password must be at least 6 characters long")
		}
		hash, err := utils.HashPassword(*input.NewPassword)
		if err != nil {
			return err
		}
		user.Password = hash
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if len(name) < 2 || len(name) > 50 {
			return utils.NewValidationError("Name must be between 2 and 50 characters long")
		}
		user.FullName = name
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !utils.IsValidEmail(email) {
			return utils.NewValidationError("Please enter a valid email address")
		}
		user.Email = email
	}

	if err := uc.Store.Users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return utils.Conflict(c, "User with this email already exists")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user.Summary(),
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Deleting a manager also deletes every course they created.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "user ID")
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	user, err := uc.Store.Users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		return err
	}

	var deletedCourses int64
	if user.Role == models.RoleManager {
		deletedCourses, err = uc.Store.Courses.DeleteByCreator(ctx, user.ID)
		if err != nil {
			return err
		}
		log.Info().Str("manager_id", user.ID.String()).Int64("courses", deletedCourses).Msg("deleted manager courses")
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
		"deletedUser": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
		"deletedCourses": deletedCourses,
	})
}

// nonNil keeps empty lists encoding as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
