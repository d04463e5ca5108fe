package services

import "strings"

const (
	CategoryLujo = "lujo"

	PriceLujo     = 500.0
	PriceStandard = 300.0
)

// PriceFor returns the nightly unit price for a room category. Only "lujo"
// has its own tier; every other category is charged the standard rate.
func PriceFor(category string) float64 {
	if category == CategoryLujo {
		return PriceLujo
	}
	return PriceStandard
}

// ItemTitle is the line item title shown on the checkout page.
func ItemTitle(category string) string {
	return "Reserva Hotel Paradiso: Habitación " + strings.ToUpper(category)
}
