package controllers

import (
	"errors"

	"learngenie/backend/config"
	"learngenie/backend/coursera"
	"learngenie/backend/recommend"
	"learngenie/backend/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const maxRecommendationsPerPage = 50

type RecommendationController struct {
	Store    *repository.Store
	Cfg      *config.Config
	Coursera *coursera.Client
}

func NewRecommendationController(store *repository.Store, cfg *config.Config, client *coursera.Client) *RecommendationController {
	return &RecommendationController{Store: store, Cfg: cfg, Coursera: client}
}

// Recommend godoc
// @Summary Courses matching the learner profile
// @Description Local and Coursera courses ranked by the number of profile keywords they contain
// @Tags recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /recommendations/{userId} [get]
func (rc *RecommendationController) Recommend(c *fiber.Ctx) error {
	userID, err := userParam(c, "userId", "userId")
	if err != nil {
		return err
	}
	page, limit := pageParams(c, recommend.DefaultPerPage, maxRecommendationsPerPage)
	ctx := c.UserContext()

	profile, err := rc.Store.Profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	keywords := recommend.Keywords(profile)

	var candidates []recommend.Candidate
	if len(keywords) > 0 {
		local, err := rc.Store.Courses.List(ctx, repository.CourseFilter{})
		if err != nil {
			return err
		}
		for _, course := range local {
			candidates = append(candidates, recommend.Candidate{
				Source:      recommend.SourceLocal,
				Title:       course.Title,
				Description: course.Description,
				Category:    course.Category,
				Course:      course,
			})
		}
		candidates = append(candidates, rc.courseraCandidates(c)...)
	}

	ranked := recommend.Rank(keywords, candidates)
	items, totalPages := recommend.Page(ranked, page, limit)
	return c.JSON(fiber.Map{
		"recommendations": items,
		"page":            page,
		"totalPages":      totalPages,
		"total":           len(ranked),
	})
}

// courseraCandidates returns nothing when the catalog is unavailable.
func (rc *RecommendationController) courseraCandidates(c *fiber.Ctx) []recommend.Candidate {
	if rc.Coursera == nil {
		return nil
	}
	courses, err := rc.Coursera.Catalog(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("coursera catalog unavailable, recommending local courses only")
		return nil
	}
	out := make([]recommend.Candidate, len(courses))
	for i, course := range courses {
		out[i] = recommend.Candidate{
			Source:      recommend.SourceCoursera,
			Title:       course.Title,
			Description: course.Description,
			Category:    course.Category,
			Instructor:  course.Instructor,
			Course:      course,
		}
	}
	return out
}
