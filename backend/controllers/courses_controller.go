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
	"github.com/google/uuid"
)

type CoursesController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewCoursesController(store *repository.Store, cfg *config.Config) *CoursesController {
	return &CoursesController{Store: store, Cfg: cfg}
}

type CourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=10,max=1000"`
	Duration    string `json:"duration" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Price       string `json:"price" validate:"required"`
	YoutubeLink string `json:"youtubeLink" validate:"required,youtube"`
	CreatedBy   string `json:"createdBy"`
}

func (r *CourseRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Category = strings.TrimSpace(r.Category)
	r.Price = strings.TrimSpace(r.Price)
	r.YoutubeLink = strings.TrimSpace(r.YoutubeLink)
}

// CourseWithRating is a course plus its rating aggregate.
type CourseWithRating struct {
	models.Course
	AverageRating float64 `json:"averageRating"`
	RatingCount   int64   `json:"ratingCount"`
}

func (cc *CoursesController) withRatings(c *fiber.Ctx, courses []models.Course) ([]CourseWithRating, error) {
	ids := make([]uuid.UUID, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}
	summaries, err := cc.Store.Ratings.Summaries(c.UserContext(), ids)
	if err != nil {
		return nil, err
	}

	out := make([]CourseWithRating, len(courses))
	for i, course := range courses {
		s := summaries[course.ID]
		out[i] = CourseWithRating{Course: course, AverageRating: s.Average, RatingCount: s.Count}
	}
	return out, nil
}

// ListCourses godoc
// @Summary List all Learn Genie courses with their average rating
// @Tags courses
// @Produce json
// @Success 200 {array} CourseWithRating
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	courses, err := cc.Store.Courses.List(c.UserContext(), repository.CourseFilter{})
	if err != nil {
		return err
	}
	out, err := cc.withRatings(c, courses)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"), "course ID")
	if err != nil {
		return err
	}
	course, err := cc.Store.Courses.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(c, "Course not found")
	}
	if err != nil {
		return err
	}
	out, err := cc.withRatings(c, []models.Course{*course})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"course": out[0]})
}

// FilterCourses lists courses, optionally only those of one creator.
func (cc *CoursesController) FilterCourses(c *fiber.Ctx) error {
	var input struct {
		CreatedBy string `json:"createdBy"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}

	filter := repository.CourseFilter{}
	if input.CreatedBy != "" {
		id, err := parseID(input.CreatedBy, "createdBy")
		if err != nil {
			return err
		}
		filter.CreatedBy = &id
	}

	courses, err := cc.Store.Courses.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(nonNil(courses))
}

func (cc *CoursesController) CourseCount(c *fiber.Ctx) error {
	count, err := cc.Store.Courses.Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": count})
}

// AddCourse godoc
// @Summary Create a course
// @Description createdBy, when sent, must be the caller.
// @Tags courses
// @Accept json
// @Produce json
// @Param course body CourseRequest true "Course data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /course_add [post]
func (cc *CoursesController) AddCourse(c *fiber.Ctx) error {
	var input CourseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.trim()
	if err := utils.ValidateStruct(&input); err != nil {
		return err
	}

	creator, err := resolveUser(c, input.CreatedBy)
	if err != nil {
		return err
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		Category:    input.Category,
		Price:       input.Price,
		YoutubeLink: input.YoutubeLink,
		CreatedBy:   creator,
	}
	if err := cc.Store.Courses.Create(c.UserContext(), &course); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"course":  course,
	})
}

// ownedCourse loads the course in the id param and checks the caller created it.
func (cc *CoursesController) ownedCourse(c *fiber.Ctx, action string) (*models.Course, error) {
	id, err := parseID(c.Params("id"), "course ID")
	if err != nil {
		return nil, err
	}
	course, err := cc.Store.Courses.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
	}
	if err != nil {
		return nil, err
	}
	if course.CreatedBy != middleware.ActorID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized to "+action+" this course")
	}
	return course, nil
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c, "update")
	if err != nil {
		return err
	}

	var input CourseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.trim()
	if err := utils.ValidateStruct(&input); err != nil {
		return err
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Duration = input.Duration
	course.Category = input.Category
	course.Price = input.Price
	course.YoutubeLink = input.YoutubeLink
	if err := cc.Store.Courses.Update(c.UserContext(), course); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"course":  course,
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	course, err := cc.ownedCourse(c, "delete")
	if err != nil {
		return err
	}
	if err := cc.Store.Courses.Delete(c.UserContext(), course.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Course deleted successfully",
		"deletedCourse": fiber.Map{
			"id":    course.ID,
			"title": course.Title,
		},
	})
}

func (cc *CoursesController) ManagerCourses(c *fiber.Ctx) error {
	managerID, err := parseID(c.Params("managerId"), "managerId")
	if err != nil {
		return err
	}
	courses, err := cc.Store.Courses.List(c.UserContext(), repository.CourseFilter{CreatedBy: &managerID})
	if err != nil {
		return err
	}
	return c.JSON(nonNil(courses))
}

// DeleteByManager removes every course of one manager. Only that manager or
// an admin may do it.
func (cc *CoursesController) DeleteByManager(c *fiber.Ctx) error {
	managerID, err := userParam(c, "managerId", "managerId")
	if err != nil {
		return err
	}
	deleted, err := cc.Store.Courses.DeleteByCreator(c.UserContext(), managerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":      "All courses by manager deleted",
		"deletedCount": deleted,
	})
}
