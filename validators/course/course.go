package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kursplatforma/middleware"
)

// LessonPayload is one lesson in a submitted course. ID is empty for new
// lessons; the array position becomes the lesson order.
type LessonPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"naziv"`
	Description string  `json:"opis"`
	Duration    float64 `json:"trajanje"`
	Video       string  `json:"video"`
}

type CoursePayload struct {
	Name        string          `json:"naziv"`
	Description string          `json:"opis"`
	Price       *float64        `json:"cena"`
	Category    string          `json:"kategorija"`
	Image       string          `json:"slika"`
	Lessons     []LessonPayload `json:"lekcije"`
}

// CreateCourse validates the full course submission. The lesson list must
// not be empty on creation.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		errors := validateCourseFields(reqData)

		if len(reqData.Lessons) == 0 {
			errors["lekcije"] = "Morate dodati barem jednu lekciju."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a course update. An empty lesson list is allowed
// here; the reconciliation step decides what may actually be deleted.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		errors := validateCourseFields(reqData)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func validateCourseFields(reqData *CoursePayload) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(reqData.Name) == "" {
		errors["naziv"] = "Naziv kursa je obavezan."
	}
	if strings.TrimSpace(reqData.Description) == "" {
		errors["opis"] = "Opis kursa je obavezan."
	}
	if reqData.Price == nil {
		errors["cena"] = "Cena je obavezna."
	} else if *reqData.Price < 0 {
		errors["cena"] = "Cena mora biti pozitivan broj."
	}
	if strings.TrimSpace(reqData.Category) == "" {
		errors["kategorija"] = "Kategorija je obavezna."
	}
	if strings.TrimSpace(reqData.Image) == "" {
		errors["slika"] = "Slika kursa je obavezna."
	}

	for i := range reqData.Lessons {
		l := &reqData.Lessons[i]
		if strings.TrimSpace(l.Name) == "" {
			errors["lekcije"] = "Svaka lekcija mora imati naziv."
		}
		if strings.TrimSpace(l.Video) == "" {
			errors["lekcije"] = "Svaka lekcija mora imati video."
		}
	}

	return errors
}
