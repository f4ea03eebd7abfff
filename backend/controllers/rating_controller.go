package controllers

import (
	"errors"

	"learngenie/backend/config"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RatingController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewRatingController(store *repository.Store, cfg *config.Config) *RatingController {
	return &RatingController{Store: store, Cfg: cfg}
}

type RateRequest struct {
	UserID string `json:"userId"`
	Rating *int   `json:"rating"`
}

func (rc *RatingController) course(c *fiber.Ctx) (*models.Course, error) {
	id, err := parseID(c.Params("id"), "courseId")
	if err != nil {
		return nil, err
	}
	course, err := rc.Store.Courses.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Course not found.")
	}
	return course, err
}

// Rate godoc
// @Summary Rate a course
// @Description Stores the caller's 1-5 rating, replacing any earlier one.
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param input body RateRequest true "Rating"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/rate [post]
func (rc *RatingController) Rate(c *fiber.Ctx) error {
	var input RateRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Rating must be a whole number between 1 and 5.")
	}
	if input.Rating == nil {
		return utils.BadRequest(c, "rating is required.")
	}
	if *input.Rating < 1 || *input.Rating > 5 {
		return utils.BadRequest(c, "Rating must be between 1 and 5.")
	}

	userID, err := resolveUser(c, input.UserID)
	if err != nil {
		return err
	}
	course, err := rc.course(c)
	if err != nil {
		return err
	}

	rating := models.CourseRating{CourseID: course.ID, UserID: userID, Rating: *input.Rating}
	if err := rc.Store.Ratings.Upsert(c.UserContext(), &rating); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Rating submitted successfully."})
}

// Ratings returns the average, the count and, when userId is given, that
// user's rating.
func (rc *RatingController) Ratings(c *fiber.Ctx) error {
	course, err := rc.course(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	summary, err := rc.Store.Ratings.Summary(ctx, course.ID)
	if err != nil {
		return err
	}

	var userRating *int
	if raw := c.Query("userId"); raw != "" {
		if userID, err := uuid.Parse(raw); err == nil {
			r, err := rc.Store.Ratings.GetForUser(ctx, course.ID, userID)
			switch {
			case err == nil:
				userRating = &r.Rating
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
		}
	}

	return c.JSON(fiber.Map{
		"average":    summary.Average,
		"count":      summary.Count,
		"userRating": userRating,
	})
}

func (rc *RatingController) AllRatings(c *fiber.Ctx) error {
	course, err := rc.course(c)
	if err != nil {
		return err
	}
	details, err := rc.Store.Ratings.ListDetails(c.UserContext(), course.ID)
	if err != nil {
		return err
	}

	ratings := make([]fiber.Map, len(details))
	for i, d := range details {
		ratings[i] = fiber.Map{
			"userId":    d.UserID,
			"rating":    d.Rating,
			"createdAt": d.CreatedAt,
			"user": fiber.Map{
				"full_name": d.FullName,
				"email":     d.Email,
			},
		}
	}
	return c.JSON(fiber.Map{"ratings": ratings})
}
