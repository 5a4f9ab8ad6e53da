package authValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kursplatforma/middleware"
)

type RegisterRequest struct {
	FirstName string `json:"ime"`
	LastName  string `json:"prezime"`
	Email     string `json:"email"`
	Password  string `json:"lozinka"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"lozinka"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"lozinka"`
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		reqData.FirstName = strings.TrimSpace(reqData.FirstName)
		reqData.LastName = strings.TrimSpace(reqData.LastName)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		errors := make(map[string]string)

		if reqData.FirstName == "" {
			errors["ime"] = "Ime je obavezno."
		}
		if reqData.LastName == "" {
			errors["prezime"] = "Prezime je obavezno."
		}
		if reqData.Email == "" || !strings.Contains(reqData.Email, "@") {
			errors["email"] = "Email nije ispravan."
		}
		if len(reqData.Password) < 6 {
			errors["lozinka"] = "Lozinka mora imati najmanje 6 karaktera."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		if reqData.Email == "" || reqData.Password == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nisu poslati svi podaci.")
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ForgotPasswordRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if reqData.Email == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email je obavezan.")
		}

		c.Locals("validatedForgotPassword", reqData)
		return c.Next()
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ResetPasswordRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		errors := make(map[string]string)

		if reqData.Token == "" {
			errors["token"] = "Token je obavezan."
		}
		if len(reqData.Password) < 6 {
			errors["lozinka"] = "Lozinka mora imati najmanje 6 karaktera."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResetPassword", reqData)
		return c.Next()
	}
}
