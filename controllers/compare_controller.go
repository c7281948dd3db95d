package controller

import (
	"log"
	"strings"
	"time"

	"healthsync/models"
	"healthsync/services"
	"healthsync/utils"

	"github.com/gofiber/fiber/v2"
)

// PlanComparer is the slice of the comparison engine the HTTP layer needs
type PlanComparer interface {
	ComparePlans(req services.CompareRequest) ([]services.CompareResult, error)
	GetAllPlans() ([]services.BrowsePlan, error)
}

// CompareController serves the comparison and catalog browsing endpoints
type CompareController struct {
	Engine PlanComparer
	logger *log.Logger
}

func NewCompareController(engine PlanComparer, logger *log.Logger) *CompareController {
	return &CompareController{Engine: engine, logger: logger}
}

// CompareRequestBody is the POST /api/compare payload. Age is a pointer so
// a present zero survives the required check.
type CompareRequestBody struct {
	Age           *int     `json:"age" validate:"required,min=0,max=120"`
	Gender        string   `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	Province      string   `json:"province" validate:"required"`
	SmokingStatus string   `json:"smoking_status" validate:"required,oneof=smoker non-smoker"`
	BudgetMin     *float64 `json:"budget_min" validate:"omitempty,min=0"`
	BudgetMax     *float64 `json:"budget_max" validate:"omitempty,min=0"`
	CoverageType  string   `json:"coverage_type" validate:"omitempty,oneof=health dental travel life disability critical_illness"`
	PlanType      string   `json:"plan_type" validate:"omitempty,oneof=individual couple family"`
	Addons        []string `json:"addons" validate:"omitempty,dive,required"`
}

// Compare handles POST /api/compare
func (cc *CompareController) Compare(c *fiber.Ctx) error {
	var body CompareRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	details := utils.ValidateStruct(body)

	province := strings.ToUpper(strings.TrimSpace(body.Province))
	if body.Province != "" && !models.ValidProvince(province) {
		details = append(details, utils.FieldError{
			Field:   "province",
			Message: "province must be a valid Canadian province code",
		})
	}

	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": details,
		})
	}

	request := services.CompareRequest{
		Age:           *body.Age,
		Gender:        body.Gender,
		Province:      province,
		SmokingStatus: body.SmokingStatus,
		BudgetMin:     body.BudgetMin,
		BudgetMax:     body.BudgetMax,
		CoverageType:  body.CoverageType,
		PlanType:      body.PlanType,
		Addons:        body.Addons,
	}

	results, err := cc.Engine.ComparePlans(request)
	if err != nil {
		cc.logger.Printf("comparison failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compare plans",
		})
	}

	coverageType := request.CoverageType
	if coverageType == "" {
		coverageType = "all"
	}
	planType := request.PlanType
	if planType == "" {
		planType = "all"
	}
	requestedAddons := request.Addons
	if requestedAddons == nil {
		requestedAddons = []string{}
	}

	return c.JSON(fiber.Map{
		"count": len(results),
		"filters_applied": fiber.Map{
			"age":            request.Age,
			"province":       request.Province,
			"smoking_status": request.SmokingStatus,
			"coverage_type":  coverageType,
			"plan_type":      planType,
			"budget_range": fiber.Map{
				"min": request.BudgetMin,
				"max": request.BudgetMax,
			},
			"requested_addons": requestedAddons,
		},
		"results": results,
	})
}

// GetAllPlans handles GET /api/plans. A store failure degrades to an empty
// catalog with an advisory notice so the browsing UI stays usable.
func (cc *CompareController) GetAllPlans(c *fiber.Ctx) error {
	plans, err := cc.Engine.GetAllPlans()
	if err != nil {
		cc.logger.Printf("plan catalog unavailable, returning empty plans: %v", err)
		return c.JSON(fiber.Map{
			"count":  0,
			"plans":  []services.BrowsePlan{},
			"notice": "Plan database is currently unavailable. Use AI Search to discover insurance plans.",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(plans),
		"plans": plans,
	})
}

// GetProvinces handles GET /api/provinces
func (cc *CompareController) GetProvinces(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"provinces": models.Provinces,
	})
}

// HealthCheck handles GET /api/health
func (cc *CompareController) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "HealthSync Insurance Comparison Engine",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
