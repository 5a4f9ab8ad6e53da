package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkoutController "kursplatforma/controllers/checkout"
	klijentController "kursplatforma/controllers/klijent"
	progressController "kursplatforma/controllers/progress"
	"kursplatforma/middleware"
	"kursplatforma/models"
	checkoutValidator "kursplatforma/validators/checkout"
	progressValidator "kursplatforma/validators/progress"
)

func SetupKlijentRoutes(app *fiber.App, db *gorm.DB) {
	checkoutCtl := checkoutController.New(db)
	klijentCtl := klijentController.New(db)
	progressCtl := progressController.New(db)

	klijentGroup := app.Group("/api/klijent", middleware.RequireRole(models.RoleKlijent))

	klijentGroup.Post("/checkout", checkoutValidator.Checkout(), checkoutCtl.CreateCheckoutSession)
	klijentGroup.Get("/kupljeni-kursevi", klijentCtl.GetPurchasedCourses)
	klijentGroup.Get("/kupljeni-kursevi/:id", klijentCtl.GetPurchasedCourseDetails)
	klijentGroup.Post("/napredak", progressValidator.MarkWatched(), progressCtl.MarkWatched)
}
