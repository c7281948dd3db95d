package controller

import (
	"log"

	"healthsync/utils"

	"github.com/gofiber/fiber/v2"
)

// ContactController logs contact form submissions and acknowledges them.
// Hooking this up to a mail service is a deployment concern.
type ContactController struct {
	logger *log.Logger
}

func NewContactController(logger *log.Logger) *ContactController {
	return &ContactController{logger: logger}
}

type contactBody struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Submit handles POST /api/contact
func (cc *ContactController) Submit(c *fiber.Ctx) error {
	var body contactBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if details := utils.ValidateStruct(body); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": details,
		})
	}

	cc.logger.Printf("contact form from %s <%s> | subject: %s | message: %s",
		body.Name, body.Email, body.Subject, body.Message)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your message. We will get back to you shortly.",
	})
}
