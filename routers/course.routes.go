package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kursplatforma/controllers/course"
	"kursplatforma/middleware"
	"kursplatforma/models"
	courseValidator "kursplatforma/validators/course"
)

// SetupCourseRoutes registers the catalogue and the educator's course
// mutations. Reads are public (with video redaction in the handler);
// mutations are educator-only with ownership checked in the handler.
func SetupCourseRoutes(app *fiber.App, db *gorm.DB) {
	ctl := courseController.New(db)

	courseGroup := app.Group("/api/kursevi")

	courseGroup.Get("/", ctl.GetAllCourses)
	courseGroup.Get("/:id", ctl.GetCourseDetails)

	courseGroup.Post("/", middleware.RequireRole(models.RoleEdukator), courseValidator.CreateCourse(), ctl.CreateCourse)
	courseGroup.Put("/:id", middleware.RequireRole(models.RoleEdukator), courseValidator.UpdateCourse(), ctl.UpdateCourse)
	courseGroup.Delete("/:id", middleware.RequireRole(models.RoleEdukator), ctl.DeleteCourse)
}
