package klijentController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursplatforma/middleware"
	"kursplatforma/models"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// PurchasedCourse is one row of the client's library.
type PurchasedCourse struct {
	ID                string `json:"id" gorm:"column:id"`
	Name              string `json:"naziv" gorm:"column:naziv"`
	Description       string `json:"opis" gorm:"column:opis"`
	Image             string `json:"slika" gorm:"column:slika"`
	Category          string `json:"kategorija" gorm:"column:kategorija"`
	EducatorFirstName string `json:"edukatorIme" gorm:"column:educator_first_name"`
	EducatorLastName  string `json:"edukatorPrezime" gorm:"column:educator_last_name"`
}

// GetPurchasedCourses lists every course the logged-in client bought.
func (ctl *Controller) GetPurchasedCourses(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}
	if claims.Role != models.RoleKlijent {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Zabranjen pristup. Ova stranica je namenjena isključivo klijentima.")
	}

	var courses []PurchasedCourse
	err := ctl.DB.Model(&models.Purchase{}).
		Select("kurs.id, kurs.naziv, kurs.opis, kurs.slika, kurs.kategorija, korisnik.ime AS educator_first_name, korisnik.prezime AS educator_last_name").
		Joins("INNER JOIN kurs ON kurs.id = kupljeni_kursevi.kurs_id").
		Joins("INNER JOIN korisnik ON korisnik.id = kurs.edukator_id").
		Where("kupljeni_kursevi.korisnik_id = ?", claims.UserID).
		Scan(&courses).Error
	if err != nil {
		log.Printf("Error fetching purchased courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru prilikom dobavljanja podataka.")
	}

	return c.JSON(fiber.Map{"success": true, "data": courses})
}

// GetPurchasedCourseDetails returns the full course, its lessons in order
// (videos included, the caller is entitled) and the caller's watched
// lesson-id set.
func (ctl *Controller) GetPurchasedCourseDetails(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}

	courseID := c.Params("id")
	if courseID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nedostaje ID kursa.")
	}

	var purchase models.Purchase
	if err := ctl.DB.Where("korisnik_id = ? AND kurs_id = ?", claims.UserID, courseID).First(&purchase).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Zabranjen pristup. Niste kupili ovaj kurs.")
	}

	var course models.Course
	if err := ctl.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Kurs nije pronađen.")
	}

	var lessons []models.Lesson
	if err := ctl.DB.Where("kurs_id = ?", courseID).Order("poredak asc").Find(&lessons).Error; err != nil {
		log.Printf("Error fetching lessons: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru prilikom dobavljanja podataka.")
	}

	lessonIDs := make([]string, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.ID)
	}

	watched := []string{}
	if len(lessonIDs) > 0 {
		err := ctl.DB.Model(&models.Progress{}).
			Where("korisnik_id = ? AND video_lekcija_id IN ? AND odgledano = ?", claims.UserID, lessonIDs, true).
			Pluck("video_lekcija_id", &watched).Error
		if err != nil {
			log.Printf("Error fetching progress: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru prilikom dobavljanja podataka.")
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"kurs":      course,
		"lekcije":   lessons,
		"odgledane": watched,
	})
}
