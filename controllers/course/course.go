package courseController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursplatforma/middleware"
	"kursplatforma/models"
	courseValidator "kursplatforma/validators/course"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// CourseListItem is one row of the public catalogue, with the educator's
// name joined in.
type CourseListItem struct {
	ID                string  `json:"id" gorm:"column:id"`
	Name              string  `json:"naziv" gorm:"column:naziv"`
	Description       string  `json:"opis" gorm:"column:opis"`
	Price             float64 `json:"cena" gorm:"column:cena"`
	Image             string  `json:"slika" gorm:"column:slika"`
	Category          string  `json:"kategorija" gorm:"column:kategorija"`
	EducatorFirstName string  `json:"edukatorIme" gorm:"column:educator_first_name"`
	EducatorLastName  string  `json:"edukatorPrezime" gorm:"column:educator_last_name"`
	EducatorID        string  `json:"edukatorId" gorm:"column:edukator_id"`
}

// GetAllCourses lists the catalogue. Educators see only their own courses;
// administrators are excluded from this route outright.
func (ctl *Controller) GetAllCourses(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	if claims != nil && claims.Role == models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Pristup listi kurseva nije dozvoljen administratorima.")
	}

	query := ctl.DB.Model(&models.Course{}).
		Select("kurs.id, kurs.naziv, kurs.opis, kurs.cena, kurs.slika, kurs.kategorija, korisnik.ime AS educator_first_name, korisnik.prezime AS educator_last_name, kurs.edukator_id").
		Joins("LEFT JOIN korisnik ON korisnik.id = kurs.edukator_id")

	if claims != nil && claims.Role == models.RoleEdukator {
		query = query.Where("kurs.edukator_id = ?", claims.UserID)
	}

	var courses []CourseListItem
	if err := query.Scan(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri učitavanju kurseva.")
	}

	response := fiber.Map{"success": true, "kursevi": courses}
	if claims != nil {
		response["userRole"] = claims.Role
		response["userId"] = claims.UserID
	}
	return c.JSON(response)
}

// CourseDetail is a course with its ordered lessons.
type CourseDetail struct {
	models.Course
	Lessons []models.Lesson `json:"lekcije"`
}

// GetCourseDetails returns one course with its lessons in order. Video
// references are redacted unless the caller owns the course or purchased it.
func (ctl *Controller) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Params("id")
	if courseID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nedostaje ID kursa u zahtevu.")
	}

	var course models.Course
	if err := ctl.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Kurs nije pronađen.")
	}

	var lessons []models.Lesson
	if err := ctl.DB.Where("kurs_id = ?", courseID).Order("poredak asc").Find(&lessons).Error; err != nil {
		log.Printf("Error fetching lessons: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri učitavanju kursa.")
	}

	if !ctl.isEntitled(middleware.GetClaims(c), &course) {
		for i := range lessons {
			lessons[i].Video = ""
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"kurs":    CourseDetail{Course: course, Lessons: lessons},
	})
}

// isEntitled reports whether the caller may see lesson videos: the owning
// educator and buyers with a Purchase row qualify.
func (ctl *Controller) isEntitled(claims *middleware.UserClaims, course *models.Course) bool {
	if claims == nil {
		return false
	}
	if claims.UserID == course.EducatorID {
		return true
	}
	var purchase models.Purchase
	err := ctl.DB.Where("korisnik_id = ? AND kurs_id = ?", claims.UserID, course.ID).First(&purchase).Error
	return err == nil
}

// CreateCourse inserts a course and its lessons as one transaction. Only
// educators may create; lesson order follows the submission order.
func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}
	if claims.Role != models.RoleEdukator {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Samo edukatori mogu kreirati kurseve.")
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		course := models.Course{
			Name:        reqData.Name,
			Description: reqData.Description,
			Price:       *reqData.Price,
			Category:    reqData.Category,
			Image:       reqData.Image,
			EducatorID:  claims.UserID,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}

		lessons := make([]models.Lesson, 0, len(reqData.Lessons))
		for i, l := range reqData.Lessons {
			lessons = append(lessons, models.Lesson{
				Name:        l.Name,
				Description: l.Description,
				Duration:    l.Duration,
				Video:       l.Video,
				Order:       i,
				CourseID:    course.ID,
			})
		}
		return tx.Create(&lessons).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Kurs sa tim nazivom već postoji.")
		}
		log.Printf("Error creating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri čuvanju podataka.")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Kurs je uspešno kreiran.", nil)
}

// UpdateCourse updates core fields and reconciles the lesson list inside
// one transaction. Only the owning educator may update.
func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}

	courseID := c.Params("id")
	if courseID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nedostaje ID kursa u zahtevu.")
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nevažeći zahtev.")
	}

	var course models.Course
	if err := ctl.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Kurs nije pronađen.")
	}

	if course.EducatorID != claims.UserID {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Nemate pravo da menjate ovaj kurs.")
	}

	// The sales count and the stored lesson list are read inside the same
	// transaction that applies the plan, so a purchase committing mid-update
	// cannot slip a lesson deletion through.
	var plan ReconcilePlan
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var salesCount int64
		if err := tx.Model(&models.Purchase{}).Where("kurs_id = ?", courseID).Count(&salesCount).Error; err != nil {
			return err
		}

		var existing []models.Lesson
		if err := tx.Where("kurs_id = ?", courseID).Order("poredak asc").Find(&existing).Error; err != nil {
			return err
		}

		plan = ReconcileLessons(courseID, existing, reqData.Lessons, salesCount > 0)

		updates := map[string]interface{}{
			"naziv":      reqData.Name,
			"opis":       reqData.Description,
			"cena":       *reqData.Price,
			"kategorija": reqData.Category,
			"slika":      reqData.Image,
		}
		if err := tx.Model(&models.Course{}).Where("id = ?", courseID).Updates(updates).Error; err != nil {
			return err
		}

		for i := range plan.Updates {
			l := plan.Updates[i]
			lessonUpdates := map[string]interface{}{
				"naziv":    l.Name,
				"opis":     l.Description,
				"trajanje": l.Duration,
				"video":    l.Video,
				"poredak":  l.Order,
			}
			if err := tx.Model(&models.Lesson{}).Where("id = ?", l.ID).Updates(lessonUpdates).Error; err != nil {
				return err
			}
		}

		if len(plan.Creates) > 0 {
			if err := tx.Create(&plan.Creates).Error; err != nil {
				return err
			}
		}

		if len(plan.DeleteIDs) > 0 {
			if err := tx.Where("video_lekcija_id IN ?", plan.DeleteIDs).Delete(&models.Progress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", plan.DeleteIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Kurs sa tim nazivom već postoji.")
		}
		log.Printf("Error updating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri izmeni kursa.")
	}

	response := fiber.Map{"success": true, "ishod": plan.Outcome}
	if len(plan.SkippedIDs) > 0 {
		response["preskoceneLekcije"] = plan.SkippedIDs
	}
	return c.JSON(response)
}

// DeleteCourse removes a course, its lessons and their progress rows as one
// atomic unit. Any existing purchase blocks the deletion.
func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Niste ulogovani.")
	}

	courseID := c.Params("id")
	if courseID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nedostaje ID kursa u zahtevu.")
	}

	var course models.Course
	if err := ctl.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Kurs nije pronađen.")
	}

	if course.EducatorID != claims.UserID {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Nemate pravo da obrišete ovaj kurs.")
	}

	var salesCount int64
	if err := ctl.DB.Model(&models.Purchase{}).Where("kurs_id = ?", courseID).Count(&salesCount).Error; err != nil {
		log.Printf("Error counting purchases: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri brisanju kursa.")
	}
	if salesCount > 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Kurs ima kupce i ne može biti obrisan.")
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []string
		if err := tx.Model(&models.Lesson{}).Where("kurs_id = ?", courseID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("video_lekcija_id IN ?", lessonIDs).Delete(&models.Progress{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("kurs_id = ?", courseID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, "id = ?", courseID).Error
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Greška pri brisanju kursa.")
	}

	return c.JSON(fiber.Map{"success": true})
}
