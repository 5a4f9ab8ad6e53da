package models

// Course is owned by exactly one educator. Deletion is blocked once any
// Purchase references it.
type Course struct {
	Base
	Name        string  `json:"naziv" gorm:"column:naziv;size:150;uniqueIndex;not null"`
	Description string  `json:"opis" gorm:"column:opis;size:1000;not null"`
	Price       float64 `json:"cena" gorm:"column:cena;type:numeric(10,2);not null"`
	Category    string  `json:"kategorija" gorm:"column:kategorija;size:100;not null"`
	Image       string  `json:"slika" gorm:"column:slika;size:1000;not null"`
	EducatorID  string  `json:"edukatorId" gorm:"column:edukator_id;type:uuid;index;not null"`
	Educator    *User   `json:"-" gorm:"foreignKey:EducatorID"`
}

func (Course) TableName() string { return "kurs" }
