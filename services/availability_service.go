// services/availability_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hotel-paradiso/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// blocking rows: confirmed, or pending and not yet expired
const overlapQuery = `SELECT id FROM reservations
WHERE room_category = ?
AND check_in < ?
AND check_out > ?
AND (status = 'confirmed' OR (status = 'pending' AND expires_at > ?))
LIMIT 1`

// AvailabilityService answers overlap questions against the reservations
// table and manages the pending holds written before a checkout session.
type AvailabilityService struct {
	DB      *gorm.DB
	HoldTTL time.Duration
	Now     func() time.Time
}

func NewAvailabilityService(db *gorm.DB, holdTTL time.Duration) *AvailabilityService {
	return &AvailabilityService{DB: db, HoldTTL: holdTTL, Now: time.Now}
}

// IsAvailable reports whether no blocking reservation of the category
// overlaps stay. Any storage failure reports unavailable.
func (s *AvailabilityService) IsAvailable(ctx context.Context, category string, stay models.DateRange) bool {
	log.Printf("[DB] Checking availability for category=%s dates=%s", category, stay)

	var ids []uint
	err := s.DB.WithContext(ctx).
		Raw(overlapQuery, category, stay.CheckOutString(), stay.CheckInString(), s.Now()).
		Scan(&ids).Error
	if err != nil {
		log.Printf("❌ [DB] availability check failed, reporting unavailable: %v", err)
		return false
	}

	available := len(ids) == 0
	log.Printf("[DB] Availability result: %v", available)
	return available
}

// HoldRequest describes the pending reservation written before checkout.
type HoldRequest struct {
	Category          string
	Stay              models.DateRange
	PayerName         string
	PayerEmail        string
	UnitPrice         float64
	ExternalReference string
}

// PlaceHold re-checks availability under a locking read and writes a pending
// hold in the same transaction, so concurrent requests for an overlapping
// stay cannot both succeed. A failed check, or an insert aborted by a
// deadlock against a concurrent hold, is reported as ErrBookingConflict.
func (s *AvailabilityService) PlaceHold(ctx context.Context, req HoldRequest) (*models.Reservation, error) {
	now := s.Now()
	expiresAt := now.Add(s.HoldTTL)

	hold := &models.Reservation{
		RoomCategory:      req.Category,
		CheckIn:           req.Stay.CheckIn,
		CheckOut:          req.Stay.CheckOut,
		Status:            models.ReservationPending,
		ExpiresAt:         &expiresAt,
		ExternalReference: req.ExternalReference,
		PayerName:         req.PayerName,
		PayerEmail:        req.PayerEmail,
		UnitPrice:         req.UnitPrice,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.
			Raw(overlapQuery+" FOR UPDATE", req.Category, req.Stay.CheckOutString(), req.Stay.CheckInString(), now).
			Scan(&ids).Error; err != nil {
			log.Printf("❌ [DB] locking availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed", ErrBookingConflict)
		}
		if len(ids) > 0 {
			return ErrBookingConflict
		}

		if err := tx.Create(hold).Error; err != nil {
			if isLockConflictError(err) {
				log.Printf("⚠️  [DB] hold insert lost a lock race: %v", err)
				return fmt.Errorf("%w: %v", ErrBookingConflict, err)
			}
			return fmt.Errorf("failed to create hold: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[DB] Hold %d placed for %s %s until %s", hold.ID, req.Category, req.Stay, expiresAt.Format(time.RFC3339))
	return hold, nil
}

// AttachPreference stores the provider session id on a hold.
func (s *AvailabilityService) AttachPreference(ctx context.Context, holdID uint, preferenceID string) error {
	return s.DB.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", holdID).
		Update("preference_id", preferenceID).Error
}

// ReleaseHold frees a pending hold. It reports whether a row changed.
func (s *AvailabilityService) ReleaseHold(ctx context.Context, externalReference string) (bool, error) {
	return s.releaseHold(s.DB.WithContext(ctx), externalReference)
}

func (s *AvailabilityService) releaseHold(tx *gorm.DB, externalReference string) (bool, error) {
	res := tx.Model(&models.Reservation{}).
		Where("external_reference = ? AND status = ?", externalReference, models.ReservationPending).
		Updates(map[string]interface{}{
			"status":     models.ReservationReleased,
			"expires_at": nil,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to release hold: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// cancelReservation frees the dates of a pending or confirmed reservation,
// used when a payment is refunded or charged back.
func (s *AvailabilityService) cancelReservation(tx *gorm.DB, externalReference string) (bool, error) {
	res := tx.Model(&models.Reservation{}).
		Where("external_reference = ? AND status IN ?", externalReference,
			[]string{models.ReservationPending, models.ReservationConfirmed}).
		Updates(map[string]interface{}{
			"status":     models.ReservationReleased,
			"expires_at": nil,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to cancel reservation: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// confirmHold promotes the hold identified by externalReference. Confirming
// an already confirmed hold is a no-op. A hold that lapsed is still
// confirmed when no other blocking reservation took its dates meanwhile.
func (s *AvailabilityService) confirmHold(tx *gorm.DB, externalReference, paymentID string) (*models.Reservation, error) {
	var hold models.Reservation
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_reference = ?", externalReference).
		First(&hold).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, fmt.Errorf("failed to load hold: %w", err)
	}

	if hold.Status == models.ReservationConfirmed {
		return &hold, nil
	}

	now := s.Now()
	var candidates []models.Reservation
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_category = ? AND id <> ? AND check_in < ? AND check_out > ?",
			hold.RoomCategory, hold.ID, hold.CheckOut.Format(models.DateLayout), hold.CheckIn.Format(models.DateLayout)).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load overlapping reservations: %w", err)
	}
	for _, other := range candidates {
		if other.Blocking(now) && other.Stay().Overlaps(hold.Stay()) {
			log.Printf("⚠️  [DB] hold %d cannot be confirmed: reservation %d holds the dates", hold.ID, other.ID)
			return &hold, ErrBookingConflict
		}
	}

	pid := paymentID
	if err := tx.Model(&hold).Updates(map[string]interface{}{
		"status":       models.ReservationConfirmed,
		"payment_id":   pid,
		"confirmed_at": now,
		"expires_at":   nil,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm hold: %w", err)
	}
	hold.Status = models.ReservationConfirmed
	hold.PaymentID = &pid
	hold.ConfirmedAt = &now
	hold.ExpiresAt = nil
	return &hold, nil
}

// ExpireStaleHolds marks lapsed pending holds as expired. Lapsed holds
// already stop blocking at expires_at; this keeps the table readable.
func (s *AvailabilityService) ExpireStaleHolds(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ? AND expires_at <= ?", models.ReservationPending, s.Now()).
		Updates(map[string]interface{}{"status": models.ReservationExpired})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire holds: %w", res.Error)
	}
	return res.RowsAffected, nil
}
