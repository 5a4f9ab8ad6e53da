package progressController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kursplatforma/middleware"
	"kursplatforma/models"
	progressValidator "kursplatforma/validators/progress"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// MarkWatched records that the session owner finished a lesson. The user id
// comes strictly from the verified claims, never from the request body, so
// nobody can write another user's progress. The write is idempotent: the
// first call inserts, every later call is a no-op reported as success.
func (ctl *Controller) MarkWatched(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}

	reqData, ok := c.Locals("validatedProgress").(*progressValidator.ProgressRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	var lesson models.Lesson
	if err := ctl.DB.First(&lesson, "id = ?", reqData.LessonID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Lekcija nije pronađena.")
	}

	var existing models.Progress
	err := ctl.DB.Where("korisnik_id = ? AND video_lekcija_id = ?", claims.UserID, reqData.LessonID).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Napredak je već sačuvan.", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking progress: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri čuvanju napretka.")
	}

	progress := models.Progress{
		Watched:  true,
		UserID:   claims.UserID,
		LessonID: reqData.LessonID,
	}
	// Concurrent first calls race for the unique index; the loser is a
	// no-op, not an error.
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "korisnik_id"}, {Name: "video_lekcija_id"}},
		DoNothing: true,
	}).Create(&progress).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri čuvanju napretka.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Napredak sačuvan.", nil)
}

// WatchedLessonIDs returns the subset of the given lessons the user already
// watched, used to rebuild the completion percentage client-side.
func (ctl *Controller) WatchedLessonIDs(userID string, lessonIDs []string) ([]string, error) {
	var watched []string
	if len(lessonIDs) == 0 {
		return watched, nil
	}
	err := ctl.DB.Model(&models.Progress{}).
		Where("korisnik_id = ? AND video_lekcija_id IN ? AND odgledano = ?", userID, lessonIDs, true).
		Pluck("video_lekcija_id", &watched).Error
	return watched, err
}
