package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const autoReturnApproved = "approved"

type MercadoPagoOptions struct {
	AccessToken     string
	Timeout         time.Duration
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
}

// MercadoPagoGateway implements PaymentGateway with the MercadoPago SDK.
type MercadoPagoGateway struct {
	preferences preference.Client
	payments    payment.Client
	opts        MercadoPagoOptions
}

func NewMercadoPagoGateway(opts MercadoPagoOptions) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(opts.AccessToken, mpconfig.WithHTTPClient(&http.Client{Timeout: opts.Timeout}))
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		opts:        opts,
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Title,
				UnitPrice:  req.UnitPrice,
				Quantity:   req.Quantity,
				CurrencyID: req.CurrencyID,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  req.PayerName,
			Email: req.PayerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: g.opts.SuccessURL,
			Failure: g.opts.FailureURL,
			Pending: g.opts.PendingURL,
		},
		AutoReturn:        autoReturnApproved,
		ExternalReference: req.ExternalReference,
		NotificationURL:   g.opts.NotificationURL,
	}

	resource, err := g.preferences.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &CheckoutSession{ID: resource.ID, InitPoint: resource.InitPoint}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q: %w", paymentID, err)
	}
	resource, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return &PaymentInfo{
		ID:                strconv.Itoa(resource.ID),
		Status:            resource.Status,
		ExternalReference: resource.ExternalReference,
	}, nil
}
