package models

import "time"

// PaymentStatusPaid is the only status the webhook writes.
const PaymentStatusPaid = "PLAĆENO"

// Purchase is the entitlement record linking a buyer to a course. The
// composite unique index is the authoritative guard against duplicate
// entitlements; rows are written exclusively by the webhook handler.
type Purchase struct {
	Base
	Date          time.Time `json:"datum" gorm:"column:datum;not null"`
	PaymentMethod string    `json:"metodPlacanja" gorm:"column:metod_placanja;size:50;not null"`
	PaymentStatus string    `json:"statusPlacanja" gorm:"column:status_placanja;size:50;not null"`
	UserID        string    `json:"korisnikId" gorm:"column:korisnik_id;type:uuid;not null;uniqueIndex:idx_kupovina_korisnik_kurs"`
	CourseID      string    `json:"kursId" gorm:"column:kurs_id;type:uuid;not null;uniqueIndex:idx_kupovina_korisnik_kurs"`
	User          *User     `json:"-" gorm:"foreignKey:UserID"`
	Course        *Course   `json:"-" gorm:"foreignKey:CourseID"`
}

func (Purchase) TableName() string { return "kupljeni_kursevi" }
