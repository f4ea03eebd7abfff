package controllers

import (
	"errors"
	"strings"

	"learngenie/backend/coursera"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	courseraPageLimit   = 20
	courseraMaxLimit    = 100
	popularDefaultLimit = 10
	legacyDefaultLimit  = 100
)

// CourseraController proxies the Coursera catalog in the platform-neutral
// course shape.
type CourseraController struct {
	Client *coursera.Client
}

func NewCourseraController(client *coursera.Client) *CourseraController {
	return &CourseraController{Client: client}
}

// upstreamError maps a client error to a response. Upstream details stay in
// the log.
func upstreamError(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, coursera.ErrNotFound) {
		return utils.NotFound(c, notFound)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("coursera request failed")
	return utils.BadGateway(c, "Failed to fetch Coursera courses")
}

// Courses godoc
// @Summary Coursera catalog
// @Description Up to five pages of 100 courses
// @Tags coursera
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} utils.ErrorResponse
// @Router /coursera/courses [get]
func (cc *CourseraController) Courses(c *fiber.Ctx) error {
	courses, err := cc.Client.Catalog(c.UserContext())
	if err != nil {
		return upstreamError(c, err, "Course not found")
	}
	return c.JSON(fiber.Map{"courses": courses, "total": len(courses)})
}

// Course godoc
// @Summary One Coursera course
// @Tags coursera
// @Produce json
// @Param id path string true "Coursera course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /coursera/courses/{id} [get]
func (cc *CourseraController) Course(c *fiber.Ctx) error {
	course, err := cc.Client.Course(c.UserContext(), c.Params("id"))
	if err != nil {
		return upstreamError(c, err, "Course not found")
	}
	return c.JSON(fiber.Map{"course": course})
}

func (cc *CourseraController) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return utils.BadRequest(c, "Search query is required")
	}
	page, limit := pageParams(c, courseraPageLimit, courseraMaxLimit)

	result, err := cc.Client.Search(c.UserContext(), query, page, limit)
	if err != nil {
		return upstreamError(c, err, "No courses found")
	}
	return c.JSON(fiber.Map{
		"courses":     result.Courses,
		"searchQuery": query,
		"pagination":  result.Pagination,
	})
}

func (cc *CourseraController) ByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	page, limit := pageParams(c, courseraPageLimit, courseraMaxLimit)

	courses, err := cc.Client.ByCategory(c.UserContext(), category, page, limit)
	if err != nil {
		return upstreamError(c, err, "No courses found")
	}
	return c.JSON(fiber.Map{
		"courses":  courses,
		"category": category,
		"pagination": coursera.Pagination{
			CurrentPage:  page,
			TotalResults: len(courses),
		},
	})
}

func (cc *CourseraController) Popular(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", popularDefaultLimit)
	if limit < 1 {
		limit = popularDefaultLimit
	}
	courses, err := cc.Client.Popular(c.UserContext(), limit)
	if err != nil {
		return upstreamError(c, err, "No courses found")
	}
	return c.JSON(fiber.Map{"courses": courses, "total": len(courses)})
}

func (cc *CourseraController) Stats(c *fiber.Ctx) error {
	stats, err := cc.Client.Stats(c.UserContext())
	if err != nil {
		return upstreamError(c, err, "No courses found")
	}
	return c.JSON(stats)
}

// Legacy serves the reduced shape of /api/coursera-courses.
func (cc *CourseraController) Legacy(c *fiber.Ctx) error {
	page, limit := pageParams(c, legacyDefaultLimit, courseraMaxLimit)
	courses, err := cc.Client.Legacy(c.UserContext(), page, limit)
	if err != nil {
		return upstreamError(c, err, "No courses found")
	}
	return c.JSON(fiber.Map{"courses": courses})
}
