package controllers

import (
	"errors"

	"learngenie/backend/config"
	"learngenie/backend/middleware"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewNotificationController(store *repository.Store, cfg *config.Config) *NotificationController {
	return &NotificationController{Store: store, Cfg: cfg}
}

// List returns the user's notifications, newest first.
func (nc *NotificationController) List(c *fiber.Ctx) error {
	userID, err := userParam(c, "userId", "userId")
	if err != nil {
		return err
	}
	notifications, err := nc.Store.Notifications.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"notifications": nonNil(notifications)})
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	var input struct {
		NotificationID string `json:"notificationId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.NotificationID == "" {
		return utils.BadRequest(c, "notificationId is required")
	}
	id, err := parseID(input.NotificationID, "notificationId")
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	n, err := nc.Store.Notifications.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "Notification not found")
	}
	if err != nil {
		return err
	}
	if n.UserID != middleware.ActorID(c) {
		return utils.Forbidden(c, "Not allowed to modify this notification")
	}

	if err := nc.Store.Notifications.MarkRead(ctx, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
