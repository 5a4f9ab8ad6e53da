package adminValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kursplatforma/middleware"
	"kursplatforma/models"
)

type CreateUserRequest struct {
	FirstName string `json:"ime"`
	LastName  string `json:"prezime"`
	Email     string `json:"email"`
	Password  string `json:"lozinka"`
	Role      string `json:"uloga"`
}

// CreateUser validates the admin user-creation form. This is the only place
// a role other than KLIJENT can be assigned.
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)

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
		switch reqData.Role {
		case models.RoleAdmin, models.RoleKlijent, models.RoleEdukator:
		default:
			errors["uloga"] = "Uloga mora biti ADMIN, KLIJENT ili EDUKATOR."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateUser", reqData)
		return c.Next()
	}
}
