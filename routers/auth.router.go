package routers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "kursplatforma/controllers/auth"
	authValidator "kursplatforma/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.New(db)

	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidator.Register(), ctl.Register)
	authGroup.Post("/login", authValidator.Login(), ctl.Login)
	authGroup.Post("/logout", ctl.Logout)
	authGroup.Post("/forgot-password", authValidator.ForgotPassword(), ctl.ForgotPassword)
	authGroup.Post("/reset-password", authValidator.ResetPassword(), ctl.ResetPassword)
}
