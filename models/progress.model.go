package models

// Progress is the per-user, per-lesson watched flag. At most one row per
// (user, lesson) pair; a repeated completion is a no-op.
type Progress struct {
	Base
	Watched  bool    `json:"odgledano" gorm:"column:odgledano;not null"`
	UserID   string  `json:"korisnikId" gorm:"column:korisnik_id;type:uuid;not null;uniqueIndex:idx_napredak_korisnik_lekcija"`
	LessonID string  `json:"videoLekcijaId" gorm:"column:video_lekcija_id;type:uuid;not null;uniqueIndex:idx_napredak_korisnik_lekcija"`
	User     *User   `json:"-" gorm:"foreignKey:UserID"`
	Lesson   *Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

func (Progress) TableName() string { return "napredak" }
