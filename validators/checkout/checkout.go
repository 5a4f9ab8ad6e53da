package checkoutValidator

import (
	"github.com/gofiber/fiber/v2"

	"kursplatforma/middleware"
)

type CartItem struct {
	ID string `json:"id"`
}

type CheckoutRequest struct {
	Items []CartItem `json:"items"`
}

// Checkout rejects an empty cart before the handler is reached. Only the
// course ids are taken from the client; prices are recomputed server-side.
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CheckoutRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
		}

		if len(reqData.Items) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Korpa je prazna")
		}

		for _, item := range reqData.Items {
			if item.ID == "" {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Korpa sadrži nevažeću stavku.")
			}
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
