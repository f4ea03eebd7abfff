package controllers

import (
	"learngenie/backend/config"
	"learngenie/backend/repository"
	"learngenie/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ManagerController serves the manager dashboard.
type ManagerController struct {
	Store *repository.Store
	Cfg   *config.Config
}

func NewManagerController(store *repository.Store, cfg *config.Config) *ManagerController {
	return &ManagerController{Store: store, Cfg: cfg}
}

type CourseRevenue struct {
	CourseID uuid.UUID `json:"courseId"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Count    int64     `json:"count"`
	Revenue  float64   `json:"revenue"`
}

// LearnerProgress godoc
// @Summary Progress of every learner in the manager's courses
// @Tags manager
// @Produce json
// @Param managerId path string true "Manager ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manager/learner_progress/{managerId} [get]
func (mc *ManagerController) LearnerProgress(c *fiber.Ctx) error {
	managerID, err := userParam(c, "managerId", "managerId")
	if err != nil {
		return err
	}
	rows, err := mc.Store.Purchases.LearnerProgress(c.UserContext(), managerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"purchased": nonNil(rows)})
}

// Revenue godoc
// @Summary Sales count and revenue per course of a manager
// @Tags manager
// @Produce json
// @Param managerId path string true "Manager ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /manager/revenue/{managerId} [get]
func (mc *ManagerController) Revenue(c *fiber.Ctx) error {
	managerID, err := userParam(c, "managerId", "managerId")
	if err != nil {
		return err
	}
	sales, err := mc.Store.Purchases.SalesByCreator(c.UserContext(), managerID)
	if err != nil {
		return err
	}

	revenue := make([]CourseRevenue, len(sales))
	for i, s := range sales {
		price := utils.ParsePrice(s.Price)
		revenue[i] = CourseRevenue{
			CourseID: s.CourseID,
			Title:    s.Title,
			Price:    price,
			Count:    s.Count,
			Revenue:  price * float64(s.Count),
		}
	}
	return c.JSON(fiber.Map{"revenue": revenue})
}
