package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	edukatorController "kursplatforma/controllers/edukator"
	"kursplatforma/middleware"
	"kursplatforma/models"
)

func SetupEdukatorRoutes(app *fiber.App, db *gorm.DB) {
	ctl := edukatorController.New(db)

	edukatorGroup := app.Group("/api/edukator")

	// Sales are readable by administrators too; the client list is not.
	edukatorGroup.Get("/prodaja", middleware.RequireRole(models.RoleEdukator, models.RoleAdmin), ctl.GetSales)
	edukatorGroup.Get("/klijenti", middleware.RequireRole(models.RoleEdukator), ctl.GetClients)
}
