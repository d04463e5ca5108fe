package models

import "time"

// Reservation statuses. Confirmed rows and unexpired pending rows block
// their category for the stay dates.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationReleased  = "released"
	ReservationExpired   = "expired"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomCategory string    `gorm:"column:room_category;size:50;not null;index:idx_reservations_category_dates,priority:1" json:"roomCategory"`
	CheckIn      time.Time `gorm:"column:check_in;type:date;not null;index:idx_reservations_category_dates,priority:2" json:"checkIn"`
	CheckOut     time.Time `gorm:"column:check_out;type:date;not null" json:"checkOut"`

	Status            string     `gorm:"column:status;size:16;not null;default:confirmed" json:"status"`
	ExpiresAt         *time.Time `gorm:"column:expires_at" json:"expiresAt,omitempty"`
	ExternalReference string     `gorm:"column:external_reference;size:128;uniqueIndex" json:"externalReference,omitempty"`
	PreferenceID      string     `gorm:"column:preference_id;size:128" json:"preferenceId,omitempty"`
	PaymentID         *string    `gorm:"column:payment_id;size:64" json:"paymentId,omitempty"`
	PayerName         string     `gorm:"column:payer_name;size:255" json:"payerName,omitempty"`
	PayerEmail        string     `gorm:"column:payer_email;size:255" json:"payerEmail,omitempty"`
	UnitPrice         float64    `gorm:"column:unit_price" json:"unitPrice"`
	ConfirmedAt       *time.Time `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Reservation) TableName() string { return "reservations" }

func (r Reservation) Stay() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// Blocking reports whether the row still occupies its dates at now.
func (r Reservation) Blocking(now time.Time) bool {
	switch r.Status {
	case ReservationConfirmed:
		return true
	case ReservationPending:
		return r.ExpiresAt != nil && r.ExpiresAt.After(now)
	}
	return false
}
