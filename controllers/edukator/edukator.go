package edukatorController

import (
	"log"
	"time"

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

// SaleRow is one buyer of one course.
type SaleRow struct {
	ClientFirstName string    `json:"klijentIme" gorm:"column:client_first_name"`
	ClientLastName  string    `json:"klijentPrezime" gorm:"column:client_last_name"`
	ClientEmail     string    `json:"klijentEmail" gorm:"column:client_email"`
	PurchaseDate    time.Time `json:"datumKupovine" gorm:"column:purchase_date"`
	PaymentMethod   string    `json:"metodPlacanja" gorm:"column:payment_method"`
	PaymentStatus   string    `json:"statusPlacanja" gorm:"column:payment_status"`
}

// CourseSales groups buyers under the sold course.
type CourseSales struct {
	CourseID string    `json:"kursId"`
	Name     string    `json:"naziv"`
	Clients  []SaleRow `json:"klijenti"`
}

// GetSales lists the educator's courses with their buyers, latest purchase
// first. Administrators may read this route as well.
func (ctl *Controller) GetSales(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}
	if claims.Role != models.RoleEdukator && claims.Role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Nemate pravo pristupa.")
	}

	// Educators see their own courses; an administrator sees all of them.
	scope := ctl.DB.Model(&models.Course{})
	if claims.Role == models.RoleEdukator {
		scope = scope.Where("edukator_id = ?", claims.UserID)
	}

	var courses []models.Course
	if err := scope.Find(&courses).Error; err != nil {
		log.Printf("Error fetching educator courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru.")
	}

	result := make([]CourseSales, 0, len(courses))
	for _, course := range courses {
		sales := CourseSales{CourseID: course.ID, Name: course.Name, Clients: []SaleRow{}}

		err := ctl.DB.Model(&models.Purchase{}).
			Select("korisnik.ime AS client_first_name, korisnik.prezime AS client_last_name, korisnik.email AS client_email, kupljeni_kursevi.datum AS purchase_date, kupljeni_kursevi.metod_placanja AS payment_method, kupljeni_kursevi.status_placanja AS payment_status").
			Joins("INNER JOIN korisnik ON korisnik.id = kupljeni_kursevi.korisnik_id").
			Where("kupljeni_kursevi.kurs_id = ?", course.ID).
			Order("kupljeni_kursevi.datum desc").
			Scan(&sales.Clients).Error
		if err != nil {
			log.Printf("Error fetching sales: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru.")
		}

		result = append(result, sales)
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// ClientRow is one distinct buyer across the educator's courses.
type ClientRow struct {
	FirstName string `json:"ime"`
	LastName  string `json:"prezime"`
	Email     string `json:"email"`
}

// GetClients lists the distinct buyers of the educator's courses.
func (ctl *Controller) GetClients(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}
	if claims.Role != models.RoleEdukator {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Pristup dozvoljen samo edukatorima.")
	}

	var clients []ClientRow
	err := ctl.DB.Model(&models.Purchase{}).
		Distinct("korisnik.ime AS first_name, korisnik.prezime AS last_name, korisnik.email").
		Joins("INNER JOIN korisnik ON korisnik.id = kupljeni_kursevi.korisnik_id").
		Joins("INNER JOIN kurs ON kurs.id = kupljeni_kursevi.kurs_id").
		Where("kurs.edukator_id = ?", claims.UserID).
		Scan(&clients).Error
	if err != nil {
		log.Printf("Error fetching clients: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška na serveru.")
	}

	return c.JSON(fiber.Map{"success": true, "data": clients})
}
