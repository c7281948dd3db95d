package controller

import (
	"errors"
	"log"
	"strings"

	"healthsync/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AISearchController proxies free-text searches to the Gemini collaborator.
// Failures here are fully isolated from the comparison engine.
type AISearchController struct {
	Gemini *services.GeminiService
	logger *log.Logger
}

func NewAISearchController(gemini *services.GeminiService, logger *log.Logger) *AISearchController {
	return &AISearchController{Gemini: gemini, logger: logger}
}

type aiSearchBody struct {
	Story string `json:"story"`
}

// Search handles POST /api/ai-search
func (ac *AISearchController) Search(c *fiber.Ctx) error {
	var body aiSearchBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "INVALID_STORY",
		})
	}

	story := strings.TrimSpace(body.Story)
	if len(story) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please provide a health story with at least 10 characters.",
			"code":  "INVALID_STORY",
		})
	}
	if len(body.Story) > 2000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Story is too long. Please keep it under 2000 characters.",
			"code":  "STORY_TOO_LONG",
		})
	}

	logrus.WithField("story_head", story[:min(len(story), 100)]).Info("processing AI search")

	results, err := ac.Gemini.SearchInsurance(c.UserContext(), story)
	if err != nil {
		ac.logger.Printf("AI search failed: %v", err)

		if errors.Is(err, services.ErrAIKeyNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "AI service is not properly configured.",
				"code":  "AI_CONFIG_ERROR",
			})
		}
		if errors.Is(err, services.ErrAIParse) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "AI returned an unexpected response. Please try again.",
				"code":  "AI_PARSE_ERROR",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI search failed. Please try again later.",
			"code":  "AI_SEARCH_ERROR",
		})
	}

	logrus.WithField("recommendations", len(results.Results)).Info("AI search completed")

	return c.JSON(fiber.Map{
		"success":          true,
		"analysis_summary": results.AnalysisSummary,
		"identified_needs": results.IdentifiedNeeds,
		"results":          results.Results,
	})
}
