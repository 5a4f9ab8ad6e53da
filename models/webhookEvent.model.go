package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent records every processed payment-gateway event by its
// provider-assigned id, so redelivered events are acknowledged without
// touching the purchase table again.
type WebhookEvent struct {
	Base
	EventID     string         `json:"eventId" gorm:"column:event_id;size:255;uniqueIndex;not null"`
	Type        string         `json:"tip" gorm:"column:tip;size:100;not null"`
	Payload     datatypes.JSON `json:"payload" gorm:"column:payload"`
	ProcessedAt time.Time      `json:"obradjeno" gorm:"column:obradjeno;autoCreateTime"`
}

func (WebhookEvent) TableName() string { return "webhook_dogadjaj" }
