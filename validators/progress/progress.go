package progressValidator

import (
	"github.com/gofiber/fiber/v2"

	"kursplatforma/middleware"
)

type ProgressRequest struct {
	LessonID string `json:"videoLekcijaId"`
}

func MarkWatched() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		if reqData.LessonID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID lekcije je obavezan.")
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
