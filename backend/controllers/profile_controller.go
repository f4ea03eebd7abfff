package controllers

import (
	"errors"
	"strings"

	"learngenie/backend/config"
	"learngenie/backend/models"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewProfileController(store *repository.Store, cfg *config.Config) *ProfileController {
	return &ProfileController{Store: store, Cfg: cfg}
}

type ProfileRequest struct {
	UserID          string   `json:"userId"`
	TwelfthStream   string   `json:"twelfthStream" validate:"max=100"`
	Degree          string   `json:"degree" validate:"max=100"`
	PostGrad        string   `json:"postGrad" validate:"max=100"`
	AreasOfInterest []string `json:"areasOfInterest" validate:"max=50,dive,max=100"`
}

// SaveProfile creates or replaces the academic profile of a user.
func (pc *ProfileController) SaveProfile(c *fiber.Ctx) error {
	var input ProfileRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return err
	}

	userID, err := resolveUser(c, input.UserID)
	if err != nil {
		return err
	}

	interests := make([]string, 0, len(input.AreasOfInterest))
	for _, area := range input.AreasOfInterest {
		if area = strings.TrimSpace(area); area != "" {
			interests = append(interests, area)
		}
	}

	profile := models.UserProfile{
		UserID:          userID,
		TwelfthStream:   strings.TrimSpace(input.TwelfthStream),
		Degree:          strings.TrimSpace(input.Degree),
		PostGrad:        strings.TrimSpace(input.PostGrad),
		AreasOfInterest: interests,
	}
	if err := pc.Store.Profiles.Upsert(c.UserContext(), &profile); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	userID, err := userParam(c, "userId", "userId")
	if err != nil {
		return err
	}
	profile, err := pc.Store.Profiles.GetByUserID(c.UserContext(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}
