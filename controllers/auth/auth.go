package authController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kursplatforma/config"
	"kursplatforma/middleware"
	"kursplatforma/models"
	"kursplatforma/utils"
	authValidator "kursplatforma/validators/auth"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// Register creates a new account. Self-registration always yields the
// KLIJENT role; other roles are assigned through admin tooling only.
func (ctl *Controller) Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	// Check if email already exists
	var existing models.User
	if err := ctl.DB.Where("email = ?", reqData.Email).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Korisnik sa ovim emailom već postoji.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Došlo je do greške na serveru.")
	}

	newUser := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Email:     reqData.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleKlijent,
	}

	if err := ctl.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Korisnik sa ovim emailom već postoji.")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Došlo je do greške na serveru.")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Uspešna registracija!", nil)
}

// Login verifies credentials and issues the session token. The token goes
// both into the response body (API clients) and the auth cookie (browser).
func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	var user models.User
	if err := ctl.DB.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		// Same message as a wrong password; do not reveal which part failed.
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Pogrešni podaci")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Pogrešni podaci")
	}

	token, err := middleware.GenerateAuthToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru")
	}

	middleware.SetAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// Logout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
func (ctl *Controller) Logout(c *fiber.Ctx) error {
	middleware.ClearAuthCookie(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Uspešno ste se odjavili.", nil)
}

// ForgotPassword stores a one-hour reset token and mails the reset link.
func (ctl *Controller) ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	var user models.User
	if err := ctl.DB.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Korisnik sa ovim emailom ne postoji.")
	}

	resetToken := uuid.NewString()
	expiry := time.Now().Add(1 * time.Hour)
	user.ResetToken = &resetToken
	user.ResetExpiry = &expiry

	if err := ctl.DB.Save(&user).Error; err != nil {
		log.Printf("Error storing reset token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Došlo je do greške na serveru.")
	}

	resetLink := config.AppConfig.PublicBaseURL + "/reset-password?token=" + resetToken
	go func(email, link string) {
		if err := utils.SendPasswordResetEmail(email, link); err != nil {
			log.Printf("Error sending reset email to %s: %v", email, err)
		}
	}(user.Email, resetLink)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Link za promenu lozinke je poslat na email.", nil)
}

// ResetPassword consumes a valid, unexpired reset token.
func (ctl *Controller) ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	var user models.User
	if err := ctl.DB.Where("reset_token = ?", reqData.Token).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći ili istekao token.")
	}

	if user.ResetExpiry == nil || user.ResetExpiry.Before(time.Now()) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći ili istekao token.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Došlo je do greške na serveru.")
	}

	updates := map[string]interface{}{
		"lozinka":             string(hashedPassword),
		"reset_token":         nil,
		"reset_token_vazi_do": nil,
	}
	if err := ctl.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Error resetting password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Došlo je do greške na serveru.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lozinka je uspešno promenjena.", nil)
}
