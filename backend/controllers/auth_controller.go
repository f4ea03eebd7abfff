package controllers

import (
	"errors"
	"strings"

	"learngenie/backend/config"
	"learngenie/backend/middleware"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewAuthController(store *repository.Store, cfg *config.Config) *AuthController {
	return &AuthController{Store: store, Cfg: cfg}
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=50" example:"Ada Lovelace"`
	Email    string `json:"email" validate:"required,email_address" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
	Role     string `json:"role" validate:"required,oneof=admin manager learner" example:"learner"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"secret123"`
	Role     string `json:"role" example:"learner"`
}

// CheckUser godoc
// @Summary Check whether an email is registered
// @Tags auth
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /check-user/{email} [get]
func (ac *AuthController) CheckUser(c *fiber.Ctx) error {
	_, err := ac.Store.Users.GetByEmail(c.UserContext(), c.Params("email"))
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
			"exists":  false,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User exists",
		"exists":  true,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}
	if !utils.IsValidEmail(email) {
		return utils.BadRequest(c, "Please enter a valid email address")
	}

	ctx := c.UserContext()
	user, err := ac.Store.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info().Str("email", email).Msg("login failed: unknown email")
		return utils.Unauthorized(c, "Invalid email or password")
	}
	if err != nil {
		return err
	}

	ok, needsRehash := utils.CheckPassword(user.Password, input.Password)
	if !ok {
		log.Info().Str("email", email).Msg("login failed: password mismatch")
		return utils.Unauthorized(c, "Invalid email or password")
	}

	// Legacy plaintext rows are upgraded on the first successful login.
	if needsRehash {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return err
		}
		if err := ac.Store.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		log.Info().Str("user_id", user.ID.String()).Msg("migrated legacy password")
	}

	if input.Role != "" && !strings.EqualFold(user.Role, input.Role) {
		return utils.Forbidden(c, "Role mismatch")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return err
	}

	log.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("login successful")
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user.Summary(),
		"token":   token,
	})
}

// Register godoc
// @Summary Register a new user
// @Description Learners may self-register. Creating a manager or admin needs an admin token.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /insert [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))

	if input.FullName == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return utils.BadRequest(c, "All fields are required")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return err
	}

	if input.Role != models.RoleLearner {
		claims := middleware.Claims(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			return utils.Forbidden(c, "Only admins can create "+input.Role+" accounts")
		}
	}

	ctx := c.UserContext()
	if _, err := ac.Store.Users.GetByEmail(ctx, input.Email); err == nil {
		return utils.Conflict(c, "User with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user := models.User{
		FullName: input.FullName,
		Email:    input.Email,
		Password: hash,
		Role:     input.Role,
	}
	if err := ac.Store.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return utils.Conflict(c, "User with this email already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user.Summary(),
	})
}
