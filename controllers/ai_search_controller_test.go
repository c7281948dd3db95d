package controller

import (
	"io"
	"log"
	"strings"
	"testing"

	"healthsync/config"
	"healthsync/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newAISearchApp(apiKey string) *fiber.App {
	app := fiber.New()
	gemini := services.NewGeminiService(config.NewAPIKeyStore(apiKey), services.NewTokenUsageTracker())
	ac := NewAISearchController(gemini, log.New(io.Discard, "", 0))
	app.Post("/api/ai-search", ac.Search)
	return app
}

func TestAISearchRejectsShortStory(t *testing.T) {
	app := newAISearchApp("test-key-1234567890")

	status, body := postJSON(t, app, "/api/ai-search", map[string]interface{}{
		"story": "too short",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STORY", body["code"])
}

func TestAISearchRejectsMissingStory(t *testing.T) {
	app := newAISearchApp("test-key-1234567890")

	status, body := postJSON(t, app, "/api/ai-search", map[string]interface{}{})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STORY", body["code"])
}

func TestAISearchRejectsOversizedStory(t *testing.T) {
	app := newAISearchApp("test-key-1234567890")

	status, body := postJSON(t, app, "/api/ai-search", map[string]interface{}{
		"story": strings.Repeat("I need health insurance for my family. ", 60),
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "STORY_TOO_LONG", body["code"])
}

func TestAISearchUnconfiguredKey(t *testing.T) {
	app := newAISearchApp("")

	status, body := postJSON(t, app, "/api/ai-search", map[string]interface{}{
		"story": "I am 35, live in Ontario, and need dental and vision coverage for my family.",
	})

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "AI_CONFIG_ERROR", body["code"])
}
