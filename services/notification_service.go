// services/notification_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"hotel-paradiso/models"

	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const topicPayment = "payment"

// provider payment statuses
const (
	paymentApproved    = "approved"
	paymentRejected    = "rejected"
	paymentCancelled   = "cancelled"
	paymentRefunded    = "refunded"
	paymentChargedBack = "charged_back"
)

var errDuplicateEvent = errors.New("duplicate_payment_event")

// Notification is one webhook delivery reduced to what processing needs.
type Notification struct {
	Topic      string
	ResourceID string
	Payload    []byte
}

// ParseNotification reads both webhook formats MercadoPago sends: the JSON
// body {"type":"payment","data":{"id":"123"}} with data.id/type in the query,
// and the legacy ?topic=payment&id=123.
func ParseNotification(body []byte, query url.Values) Notification {
	n := Notification{Payload: body}

	if gjson.ValidBytes(body) {
		n.Topic = gjson.GetBytes(body, "type").String()
		if n.Topic == "" {
			n.Topic = gjson.GetBytes(body, "topic").String()
		}
		n.ResourceID = gjson.GetBytes(body, "data.id").String()
	}
	if n.Topic == "" {
		n.Topic = query.Get("type")
	}
	if n.Topic == "" {
		n.Topic = query.Get("topic")
	}
	if n.ResourceID == "" {
		n.ResourceID = query.Get("data.id")
	}
	if n.ResourceID == "" && n.Topic == topicPayment {
		n.ResourceID = query.Get("id")
	}

	n.Topic = strings.TrimSpace(n.Topic)
	n.ResourceID = strings.TrimSpace(n.ResourceID)
	return n
}

// NotificationService turns verified payment notifications into reservation
// state transitions, at most once per (payment, status).
type NotificationService struct {
	DB           *gorm.DB
	Gateway      PaymentGateway
	Availability *AvailabilityService
}

func NewNotificationService(db *gorm.DB, gateway PaymentGateway, availability *AvailabilityService) *NotificationService {
	return &NotificationService{DB: db, Gateway: gateway, Availability: availability}
}

// Process looks the payment up at the provider and applies its status. It
// returns the recorded outcome. Errors are transient and the provider is
// expected to redeliver.
func (s *NotificationService) Process(ctx context.Context, n Notification) (string, error) {
	if n.Topic != topicPayment || n.ResourceID == "" {
		log.Printf("🔔 [MP NOTIFICATION] ignoring topic=%q id=%q", n.Topic, n.ResourceID)
		return models.OutcomeIgnored, nil
	}

	info, err := s.Gateway.GetPayment(ctx, n.ResourceID)
	if err != nil {
		return "", errors.Join(ErrProvider, err)
	}
	log.Printf("🔔 [MP NOTIFICATION] payment=%s status=%s ref=%s", info.ID, info.Status, info.ExternalReference)

	var payload datatypes.JSON
	if len(n.Payload) > 0 && gjson.ValidBytes(n.Payload) {
		payload = datatypes.JSON(n.Payload)
	}

	var outcome string
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := models.PaymentEvent{
			PaymentID:         info.ID,
			Status:            info.Status,
			ExternalReference: info.ExternalReference,
			Payload:           payload,
		}
		if err := tx.Create(&event).Error; err != nil {
			if isDuplicateKeyError(err) {
				return errDuplicateEvent
			}
			return fmt.Errorf("failed to record payment event: %w", err)
		}

		var applyErr error
		outcome, applyErr = s.apply(tx, info)
		if applyErr != nil {
			return applyErr
		}
		return tx.Model(&event).Update("outcome", outcome).Error
	})
	if errors.Is(err, errDuplicateEvent) {
		log.Printf("🔔 [MP NOTIFICATION] payment=%s status=%s already processed", info.ID, info.Status)
		return models.OutcomeDuplicate, nil
	}
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (s *NotificationService) apply(tx *gorm.DB, info *PaymentInfo) (string, error) {
	if info.ExternalReference == "" {
		return models.OutcomeIgnored, nil
	}

	switch info.Status {
	case paymentApproved:
		hold, err := s.Availability.confirmHold(tx, info.ExternalReference, info.ID)
		switch {
		case errors.Is(err, ErrHoldNotFound):
			log.Printf("⚠️  [MP NOTIFICATION] no hold for ref=%s", info.ExternalReference)
			return models.OutcomeNotFound, nil
		case errors.Is(err, ErrBookingConflict):
			log.Printf("❌ [MP NOTIFICATION] payment %s approved but dates for ref=%s are taken; refund required", info.ID, info.ExternalReference)
			return models.OutcomeConflict, nil
		case err != nil:
			return "", err
		}
		log.Printf("✅ [MP NOTIFICATION] reservation %d confirmed", hold.ID)
		return models.OutcomeConfirmed, nil

	case paymentRejected, paymentCancelled:
		if _, err := s.Availability.releaseHold(tx, info.ExternalReference); err != nil {
			return "", err
		}
		return models.OutcomeReleased, nil

	case paymentRefunded, paymentChargedBack:
		if _, err := s.Availability.cancelReservation(tx, info.ExternalReference); err != nil {
			return "", err
		}
		return models.OutcomeReleased, nil
	}
	return models.OutcomeIgnored, nil
}
