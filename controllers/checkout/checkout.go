package checkoutController

import (
	"encoding/json"
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"gorm.io/gorm"

	"kursplatforma/config"
	"kursplatforma/middleware"
	"kursplatforma/models"
	checkoutValidator "kursplatforma/validators/checkout"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// CreateCheckoutSession builds a Stripe Checkout session for the submitted
// cart. The cart is trusted only for course ids: names and amounts are
// re-read from the database, so a tampered client price changes nothing.
// No purchase rows are written here; entitlements are granted exclusively
// by the webhook.
func (ctl *Controller) CreateCheckoutSession(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}
	if claims.Role != models.RoleKlijent {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Samo klijenti mogu obavljati kupovinu.")
	}

	reqData, ok := c.Locals("validatedCheckout").(*checkoutValidator.CheckoutRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	ids := make([]string, 0, len(reqData.Items))
	for _, item := range reqData.Items {
		ids = append(ids, item.ID)
	}

	var courses []models.Course
	if err := ctl.DB.Where("id IN ?", ids).Find(&courses).Error; err != nil {
		log.Printf("Error fetching cart courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška prilikom kreiranja plaćanja.")
	}
	if len(courses) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Kursevi nisu pronađeni")
	}

	stripe.Key = config.AppConfig.StripeSecretKey

	sess, err := checkoutsession.New(BuildSessionParams(claims.UserID, courses))
	if err != nil {
		log.Printf("Checkout error: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška prilikom kreiranja plaćanja.")
	}

	return c.JSON(fiber.Map{"success": true, "url": sess.URL})
}

// BuildSessionParams assembles the gateway request from authoritative
// course rows. The buyer id and the resolved course ids ride along as
// opaque metadata; the webhook relies on them round-tripping exactly.
func BuildSessionParams(buyerID string, courses []models.Course) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(courses))
	courseIDs := make([]string, 0, len(courses))

	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(course.Name),
		}
		if course.Image != "" {
			productData.Images = stripe.StringSlice([]string{course.Image})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String("eur"),
				ProductData: productData,
				UnitAmount:  stripe.Int64(PriceToCents(course.Price)),
			},
			Quantity: stripe.Int64(1),
		})
	}

	encodedIDs, _ := json.Marshal(courseIDs)

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(config.AppConfig.PublicBaseURL + "/stranice/korpa?success=true"),
		CancelURL:          stripe.String(config.AppConfig.PublicBaseURL + "/stranice/korpa?canceled=true"),
	}
	params.AddMetadata("korisnikId", buyerID)
	params.AddMetadata("kursIds", string(encodedIDs))

	return params
}

// PriceToCents converts a stored decimal price to gateway cents.
func PriceToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
