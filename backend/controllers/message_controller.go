package controllers

import (
	"strings"

	"learngenie/backend/config"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// MessageController handles the contact form.
type MessageController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewMessageController(store *repository.Store, cfg *config.Config) *MessageController {
	return &MessageController{Store: store, Cfg: cfg}
}

type MessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email_address"`
	Number  string `json:"number" validate:"required,max=30"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (mc *MessageController) Create(c *fiber.Ctx) error {
	var input MessageRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Number = strings.TrimSpace(input.Number)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" || input.Email == "" || input.Number == "" || input.Message == "" {
		return utils.BadRequest(c, "All fields are required")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return err
	}

	feedback := models.Feedback{
		Name:    input.Name,
		Email:   input.Email,
		Number:  input.Number,
		Message: input.Message,
	}
	if err := mc.Store.Feedback.Create(c.UserContext(), &feedback); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Feedback saved successfully",
	})
}

func (mc *MessageController) List(c *fiber.Ctx) error {
	feedbacks, err := mc.Store.Feedback.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "feedbacks": nonNil(feedbacks)})
}
