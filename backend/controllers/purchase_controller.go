package controllers

import (
	"errors"
	"time"

	"learngenie/backend/config"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const purchaseMessage = "You have successfully purchased a new course!"

type PurchaseController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewPurchaseController(store *repository.Store, cfg *config.Config) *PurchaseController {
	return &PurchaseController{Store: store, Cfg: cfg}
}

type PurchaseRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

// PurchasedCourse is a course joined with the caller's purchase record.
type PurchasedCourse struct {
	models.Course
	PurchaseDate time.Time `json:"purchaseDate"`
	Progress     int       `json:"progress"`
}

// PurchaseCourse godoc
// @Summary Purchase a course
// @Tags purchases
// @Accept json
// @Produce json
// @Param input body PurchaseRequest true "Course to purchase"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /purchase_course [post]
func (pc *PurchaseController) PurchaseCourse(c *fiber.Ctx) error {
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
	course, err := pc.findCourse(c, input.CourseID)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	purchase := models.PurchasedCourse{UserID: userID, CourseID: course.ID}
	if err := pc.Store.Purchases.Create(ctx, &purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return utils.Conflict(c, "Course already purchased")
		}
		return err
	}

	pc.notify(c, userID, course.ID, models.NotificationPurchase, purchaseMessage)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Course purchase saved",
		"purchase": purchase,
	})
}

// PurchasedCourses lists the user's courses with purchase date and progress.
// Purchases of deleted courses are skipped.
func (pc *PurchaseController) PurchasedCourses(c *fiber.Ctx) error {
	userID, err := userParam(c, "userId", "userId")
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	purchases, err := pc.Store.Purchases.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(purchases))
	byCourse := make(map[uuid.UUID]models.PurchasedCourse, len(purchases))
	for i, p := range purchases {
		ids[i] = p.CourseID
		byCourse[p.CourseID] = p
	}
	courses, err := pc.Store.Courses.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}

	out := make([]PurchasedCourse, 0, len(courses))
	for _, course := range courses {
		p := byCourse[course.ID]
		out = append(out, PurchasedCourse{Course: course, PurchaseDate: p.PurchaseDate, Progress: p.Progress})
	}
	return c.JSON(fiber.Map{"courses": out})
}

func (pc *PurchaseController) PurchasedCount(c *fiber.Ctx) error {
	count, err := pc.Store.Purchases.Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": count})
}

func (pc *PurchaseController) findCourse(c *fiber.Ctx, raw string) (*models.Course, error) {
	id, err := parseID(raw, "courseId")
	if err != nil {
		return nil, err
	}
	course, err := pc.Store.Courses.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
	}
	return course, err
}

// notify stores a notification. A failure is logged and does not fail the
// request that triggered it.
func (pc *PurchaseController) notify(c *fiber.Ctx, userID, courseID uuid.UUID, kind, message string) {
	n := models.Notification{UserID: userID, CourseID: courseID, Type: kind, Message: message}
	if err := pc.Store.Notifications.Create(c.UserContext(), &n); err != nil {
		log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("course_id", courseID.String()).
			Str("type", kind).
			Msg("failed to store notification")
	}
}
