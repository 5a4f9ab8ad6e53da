package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the shared primary-key block for tables keyed by uuid.
type Base struct {
	ID string `json:"id" gorm:"type:uuid;primaryKey"`
}

// BeforeCreate assigns a fresh uuid when none was supplied
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
