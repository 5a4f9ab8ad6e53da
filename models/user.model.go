package models

import (
	"time"
)

// Roles a user can hold. Role is assigned at registration (always KLIJENT)
// and changed only through admin tooling.
const (
	RoleAdmin    = "ADMIN"
	RoleKlijent  = "KLIJENT"
	RoleEdukator = "EDUKATOR"
)

type User struct {
	Base
	FirstName    string     `json:"ime" gorm:"column:ime;size:100;not null"`
	LastName     string     `json:"prezime" gorm:"column:prezime;size:100;not null"`
	Email        string     `json:"email" gorm:"column:email;size:255;uniqueIndex;not null"`
	Password     string     `json:"-" gorm:"column:lozinka;size:255;not null"`
	Role         string     `json:"uloga" gorm:"column:uloga;size:20;not null"`
	RegisteredAt time.Time  `json:"datumRegistracije" gorm:"column:datum_registracije;autoCreateTime"`
	ResetToken   *string    `json:"-" gorm:"column:reset_token;size:255"`
	ResetExpiry  *time.Time `json:"-" gorm:"column:reset_token_vazi_do"`
}

func (User) TableName() string { return "korisnik" }
