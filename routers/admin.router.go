package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminController "kursplatforma/controllers/admin"
	"kursplatforma/middleware"
	"kursplatforma/models"
	adminValidator "kursplatforma/validators/admin"
)

func SetupAdminRoutes(app *fiber.App, db *gorm.DB) {
	ctl := adminController.New(db)

	adminGroup := app.Group("/api/admin", middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/korisnici", ctl.ListUsers)
	adminGroup.Post("/korisnici", adminValidator.CreateUser(), ctl.CreateUser)
	adminGroup.Get("/statistika-prodaje", ctl.SalesStatistics)
	adminGroup.Get("/izvestaji", ctl.MonthlyClientReport)
}
