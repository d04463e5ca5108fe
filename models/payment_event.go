package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification outcomes recorded on PaymentEvent.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeReleased  = "released"
	OutcomeIgnored   = "ignored"
	OutcomeConflict  = "conflict"
	OutcomeNotFound  = "hold_not_found"
	OutcomeDuplicate = "duplicate"
)

// PaymentEvent records one processed (payment, status) pair reported by the
// provider. The unique index makes redelivered webhooks a no-op.
type PaymentEvent struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	PaymentID         string         `gorm:"column:payment_id;size:64;not null;uniqueIndex:idx_payment_events_payment_status,priority:1" json:"paymentId"`
	Status            string         `gorm:"column:status;size:32;not null;uniqueIndex:idx_payment_events_payment_status,priority:2" json:"status"`
	ExternalReference string         `gorm:"column:external_reference;size:128;index" json:"externalReference"`
	Outcome           string         `gorm:"column:outcome;size:32" json:"outcome"`
	Payload           datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

func (PaymentEvent) TableName() string { return "payment_events" }
