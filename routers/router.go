package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursplatforma/middleware"
)

// SetupRoutes mounts the edge authorization guard and every route group.
// The guard runs before any /api handler; each group adds its own
// RequireRole layer on top.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Use("/api", middleware.AuthGuard)

	SetupAuthRoutes(app, db)
	SetupCourseRoutes(app, db)
	SetupKlijentRoutes(app, db)
	SetupEdukatorRoutes(app, db)
	SetupAdminRoutes(app, db)
	SetupWebhookRoutes(app, db)
}
