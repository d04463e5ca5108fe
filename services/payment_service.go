// services/payment_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hotel-paradiso/models"
)

// CheckoutRequest is the provider-neutral shape of one hosted checkout.
type CheckoutRequest struct {
	Title             string
	UnitPrice         float64
	Quantity          int
	CurrencyID        string
	PayerName         string
	PayerEmail        string
	ExternalReference string
}

type CheckoutSession struct {
	ID        string
	InitPoint string
}

// PaymentInfo is what the provider reports about a payment.
type PaymentInfo struct {
	ID                string
	Status            string
	ExternalReference string
}

// PaymentGateway is the payment provider contract.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error)
}

// BuildExternalReference returns the human readable correlation token
// {category}-{checkIn}-{checkOut}-{unixMillis}.
func BuildExternalReference(category string, stay models.DateRange, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%d", category, stay.CheckInString(), stay.CheckOutString(), now.UnixMilli())
}

type BookingRequest struct {
	Category   string
	Stay       models.DateRange
	PayerName  string
	PayerEmail string
}

type BookingCheckout struct {
	HoldID            uint
	PreferenceID      string
	InitPoint         string
	ExternalReference string
	UnitPrice         float64
}

// PaymentService turns an availability-checked booking attempt into a
// provider checkout session.
type PaymentService struct {
	Availability *AvailabilityService
	Gateway      PaymentGateway
	CurrencyID   string
	Now          func() time.Time
}

func NewPaymentService(availability *AvailabilityService, gateway PaymentGateway, currencyID string) *PaymentService {
	return &PaymentService{
		Availability: availability,
		Gateway:      gateway,
		CurrencyID:   currencyID,
		Now:          time.Now,
	}
}

// StartCheckout places a pending hold and opens a checkout session for it.
// On ErrBookingConflict the gateway is never called. When the gateway fails
// the hold is released and the error wraps ErrProvider.
func (s *PaymentService) StartCheckout(ctx context.Context, req BookingRequest) (*BookingCheckout, error) {
	price := PriceFor(req.Category)
	ref := BuildExternalReference(req.Category, req.Stay, s.Now())

	hold, err := s.Availability.PlaceHold(ctx, HoldRequest{
		Category:          req.Category,
		Stay:              req.Stay,
		PayerName:         req.PayerName,
		PayerEmail:        req.PayerEmail,
		UnitPrice:         price,
		ExternalReference: ref,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[MP] Creating preference with external reference %s", ref)
	session, err := s.Gateway.CreateCheckout(ctx, CheckoutRequest{
		Title:             ItemTitle(req.Category),
		UnitPrice:         price,
		Quantity:          1,
		CurrencyID:        s.CurrencyID,
		PayerName:         req.PayerName,
		PayerEmail:        req.PayerEmail,
		ExternalReference: ref,
	})
	if err != nil {
		log.Printf("❌ [MP_ERROR] failed to create preference: %v", err)
		if _, relErr := s.Availability.ReleaseHold(context.WithoutCancel(ctx), ref); relErr != nil {
			log.Printf("❌ [DB] failed to release hold %d: %v", hold.ID, relErr)
		}
		return nil, errors.Join(ErrProvider, err)
	}

	if err := s.Availability.AttachPreference(ctx, hold.ID, session.ID); err != nil {
		log.Printf("warning: failed to store preference id on hold %d: %v", hold.ID, err)
	}

	log.Printf("[MP] Preference %s created. Redirecting to %s", session.ID, session.InitPoint)
	return &BookingCheckout{
		HoldID:            hold.ID,
		PreferenceID:      session.ID,
		InitPoint:         session.InitPoint,
		ExternalReference: ref,
		UnitPrice:         price,
	}, nil
}
