package controllers

import (
	"errors"
	"fmt"
	"math"

	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProgressRequest struct {
	UserID   string   `json:"userId"`
	CourseID string   `json:"courseId"`
	Progress *float64 `json:"progress"`
}

// UpdateProgress godoc
// @Summary Update course progress
// @Description Progress is a whole number from 0 to 100. Reaching 100 sends one completion notification.
// @Tags purchases
// @Accept json
// @Produce json
// @Param input body ProgressRequest true "Progress update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /update_course_progress [post]
func (pc *PurchaseController) UpdateProgress(c *fiber.Ctx) error {
	var input ProgressRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "courseId and a numeric progress are required")
	}
	if input.CourseID == "" || input.Progress == nil {
		return utils.BadRequest(c, "courseId and progress are required")
	}
	p := *input.Progress
	if p < models.MinProgress || p > models.MaxProgress || p != math.Trunc(p) {
		return utils.BadRequest(c, fmt.Sprintf("progress must be a whole number between %d and %d", models.MinProgress, models.MaxProgress))
	}

	userID, err := resolveUser(c, input.UserID)
	if err != nil {
		return err
	}
	course, err := pc.findCourse(c, input.CourseID)
	if err != nil {
		return err
	}

	change, err := pc.Store.Purchases.SetProgress(c.UserContext(), userID, course.ID, int(p), true)
	if err != nil {
		return err
	}
	if change.Completed() {
		pc.notifyCompletion(c, userID, course)
	}

	return c.JSON(fiber.Map{
		"message":  "Course progress updated",
		"progress": change.Purchase.Progress,
	})
}

// MarkCompleted sets an existing purchase to 100%.
func (pc *PurchaseController) MarkCompleted(c *fiber.Ctx) error {
	var input PurchaseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.CourseID == "" {
		return utils.BadRequest(c, "courseId is required")
	}

	userID, err := resolveUser(c, input.UserID)
	if err != nil {
		return err
	}
	courseID, err := parseID(input.CourseID, "courseId")
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	change, err := pc.Store.Purchases.SetProgress(ctx, userID, courseID, models.MaxProgress, false)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "Purchase not found")
	}
	if err != nil {
		return err
	}

	if change.Completed() {
		course, err := pc.Store.Courses.GetByID(ctx, courseID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if course == nil {
			course = &models.Course{ID: courseID}
		}
		pc.notifyCompletion(c, userID, course)
	}

	return c.JSON(fiber.Map{"message": "Course marked as completed"})
}

func (pc *PurchaseController) notifyCompletion(c *fiber.Ctx, userID uuid.UUID, course *models.Course) {
	title := course.Title
	if title == "" {
		title = "a course"
	}
	msg := fmt.Sprintf("Congratulations! You have completed %q and earned a certificate.", title)
	pc.notify(c, userID, course.ID, models.NotificationCompletion, msg)
}
