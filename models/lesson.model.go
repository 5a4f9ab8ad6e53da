package models

// Lesson is a video lesson inside a course. Order establishes the strict
// lesson sequence; it is rewritten to the submission position on every
// course update. Video is redacted in responses for callers who neither own
// nor purchased the course.
type Lesson struct {
	Base
	Name        string  `json:"naziv" gorm:"column:naziv;size:150;not null"`
	Description string  `json:"opis" gorm:"column:opis;size:1000;not null"`
	Duration    float64 `json:"trajanje" gorm:"column:trajanje;not null"`
	Video       string  `json:"video,omitempty" gorm:"column:video;size:1000;not null"`
	Order       int     `json:"poredak" gorm:"column:poredak;not null;default:0"`
	CourseID    string  `json:"kursId" gorm:"column:kurs_id;type:uuid;index;not null"`
	Course      *Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Lesson) TableName() string { return "video_lekcija" }
