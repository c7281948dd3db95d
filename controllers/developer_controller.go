package controller

import (
	"log"
	"strings"
	"time"

	"healthsync/config"
	"healthsync/services"

	"github.com/gofiber/fiber/v2"
)

// DeveloperController serves the hidden developer console: API key
// management and AI token usage statistics
type DeveloperController struct {
	Keys   *config.APIKeyStore
	Gemini *services.GeminiService
	Usage  *services.TokenUsageTracker
	logger *log.Logger
}

func NewDeveloperController(keys *config.APIKeyStore, gemini *services.GeminiService, usage *services.TokenUsageTracker, logger *log.Logger) *DeveloperController {
	return &DeveloperController{Keys: keys, Gemini: gemini, Usage: usage, logger: logger}
}

// GetAPIKey handles GET /api/developer/api-key, returning the key masked
func (dc *DeveloperController) GetAPIKey(c *fiber.Ctx) error {
	key := dc.Keys.Get()
	if key == "" {
		return c.JSON(fiber.Map{
			"configured": false,
			"maskedKey":  "",
			"message":    "No Gemini API key is configured.",
		})
	}

	return c.JSON(fiber.Map{
		"configured": true,
		"maskedKey":  dc.Keys.Masked(),
		"keyLength":  len(key),
		"message":    "Gemini API key is configured.",
	})
}

type updateAPIKeyBody struct {
	APIKey string `json:"apiKey"`
}

// UpdateAPIKey handles POST /api/developer/api-key. The new key is swapped
// into the key store and takes effect on the next AI call.
func (dc *DeveloperController) UpdateAPIKey(c *fiber.Ctx) error {
	var body updateAPIKeyBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	trimmed := strings.TrimSpace(body.APIKey)
	if len(trimmed) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Please provide a valid API key (at least 10 characters).",
		})
	}

	dc.Keys.Set(trimmed)
	dc.logger.Printf("Gemini API key updated (masked: %s)", dc.Keys.Masked())

	return c.JSON(fiber.Map{
		"success":   true,
		"maskedKey": dc.Keys.Masked(),
		"message":   "Gemini API key updated successfully. The new key is active immediately.",
	})
}

// TestAPIKey handles GET /api/developer/api-key/test by issuing a minimal
// generation call against the configured key
func (dc *DeveloperController) TestAPIKey(c *fiber.Ctx) error {
	if dc.Keys.Get() == "" {
		return c.JSON(fiber.Map{
			"live":   false,
			"error":  "No Gemini API key is configured.",
			"models": []string{},
		})
	}

	reply, usage, err := dc.Gemini.TestKey(c.UserContext())
	if err != nil {
		dc.logger.Printf("API key test failed: %v", err)

		message, code := classifyKeyTestError(err.Error())
		return c.JSON(fiber.Map{
			"live":      false,
			"error":     message,
			"errorCode": code,
			"testedAt":  time.Now().UTC().Format(time.RFC3339),
		})
	}

	response := fiber.Map{
		"live":         true,
		"message":      "Gemini API key is live and working!",
		"testResponse": reply,
		"testedAt":     time.Now().UTC().Format(time.RFC3339),
	}
	if usage != nil {
		response["tokenInfo"] = fiber.Map{
			"promptTokens":     usage.PromptTokens,
			"completionTokens": usage.CompletionTokens,
			"totalTokens":      usage.TotalTokens,
		}
		response["testedModel"] = usage.Model
	}
	return c.JSON(response)
}

func classifyKeyTestError(msg string) (string, string) {
	switch {
	case strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "401"):
		return "The API key is invalid or has been revoked.", "INVALID_KEY"
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota"):
		return "API key is valid but rate limited. Try again in a moment.", "RATE_LIMITED"
	case strings.Contains(msg, "403"):
		return "API key doesn't have permission to access Gemini models.", "PERMISSION_DENIED"
	}
	return "API key test failed.", "UNKNOWN_ERROR"
}

// GetTokenUsage handles GET /api/developer/token-usage
func (dc *DeveloperController) GetTokenUsage(c *fiber.Ctx) error {
	return c.JSON(dc.Usage.Report())
}

// ResetTokenUsage handles POST /api/developer/token-usage/reset
func (dc *DeveloperController) ResetTokenUsage(c *fiber.Ctx) error {
	dc.Usage.Reset()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Token usage counters have been reset.",
	})
}
