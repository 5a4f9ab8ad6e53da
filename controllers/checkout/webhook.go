package checkoutController

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kursplatforma/config"
	"kursplatforma/models"
)

// HandleWebhook is the single writer of purchase rows. It authenticates by
// the provider's HMAC signature over the raw body, not by bearer token.
// A 400 tells the provider the event is permanently bad; a 500 asks it to
// redeliver (storage failures only).
func (ctl *Controller) HandleWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		log.Printf("Webhook signature error: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	if event.Type != "checkout.session.completed" {
		return c.SendString("Success")
	}

	// A redelivered event is acknowledged without touching the store.
	var seen models.WebhookEvent
	if err := ctl.DB.Where("event_id = ?", event.ID).First(&seen).Error; err == nil {
		return c.SendString("Success")
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Printf("Webhook payload error: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: invalid payload")
	}

	buyerID := session.Metadata["korisnikId"]
	var courseIDs []string
	if raw := session.Metadata["kursIds"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &courseIDs); err != nil {
			courseIDs = nil
		}
	}

	if buyerID == "" || len(courseIDs) == 0 {
		log.Println("Webhook metadata missing in checkout session")
		return c.Status(fiber.StatusBadRequest).SendString("Missing metadata")
	}

	method := "card"
	if len(session.PaymentMethodTypes) > 0 {
		method = session.PaymentMethodTypes[0]
	}

	if err := ctl.recordCheckoutEvent(event.ID, string(event.Type), payload, buyerID, courseIDs, method); err != nil {
		log.Printf("Webhook database error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Database Error")
	}

	return c.SendString("Success")
}

// recordCheckoutEvent writes the entitlement rows and the idempotency
// record for one completed checkout as a single transaction. Every insert
// tolerates duplicates: two deliveries of the same event racing past the
// redelivery check both land here, and the loser of each unique-index race
// must end up a no-op instead of failing the whole transaction.
func (ctl *Controller) recordCheckoutEvent(eventID, eventType string, payload []byte, buyerID string, courseIDs []string, method string) error {
	return ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, courseID := range courseIDs {
			purchase := models.Purchase{
				Date:          time.Now(),
				PaymentMethod: method,
				PaymentStatus: models.PaymentStatusPaid,
				UserID:        buyerID,
				CourseID:      courseID,
			}
			// The (korisnik_id, kurs_id) unique index is the entitlement
			// guard; a conflicting insert is a successful no-op.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "korisnik_id"}, {Name: "kurs_id"}},
				DoNothing: true,
			}).Create(&purchase).Error; err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).Create(&models.WebhookEvent{
			EventID: eventID,
			Type:    eventType,
			Payload: datatypes.JSON(payload),
		}).Error
	})
}
