package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkoutController "kursplatforma/controllers/checkout"
)

func SetupWebhookRoutes(app *fiber.App, db *gorm.DB) {
	ctl := checkoutController.New(db)

	app.Post("/api/webhook", ctl.HandleWebhook)
}
