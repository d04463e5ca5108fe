// controllers/reserva_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"hotel-paradiso/models"
	"hotel-paradiso/services"
	"hotel-paradiso/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingFields  = "Faltan datos de la reserva."
	msgInvalidFields  = "Datos de la reserva inválidos: las fechas deben tener formato AAAA-MM-DD, la salida ser posterior a la llegada y los textos no exceder su largo máximo."
	msgUnavailable    = "La habitación ya no está disponible."
	msgPaymentFailure = "Error al iniciar el pago. Intente nuevamente más tarde."
)

// ---------------------------
// Payloads
// ---------------------------

type VerificarReservaPayload struct {
	Llegada string `json:"llegada" binding:"required,isodate"`
	Salida  string `json:"salida" binding:"required,isodate,afterdate=Llegada"`
	Tipo    string `json:"tipo" binding:"required,max=50"`
}

type CrearPagoPayload struct {
	Llegada string `json:"llegada" binding:"required,isodate"`
	Salida  string `json:"salida" binding:"required,isodate,afterdate=Llegada"`
	Tipo    string `json:"tipo" binding:"required,max=50"`
	Nombre  string `json:"nombre" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email,max=255"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservaController struct {
	AvailabilitySvc *services.AvailabilityService
	PaymentSvc      *services.PaymentService
}

func NewReservaController(availability *services.AvailabilityService, payments *services.PaymentService) *ReservaController {
	return &ReservaController{AvailabilitySvc: availability, PaymentSvc: payments}
}

// VerificarReserva (POST /api/verificar-reserva)
func (ctrl *ReservaController) VerificarReserva(c *gin.Context) {
	log.Println("➡️  [API] POST /verificar-reserva")

	var p VerificarReservaPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		log.Printf("❌ [API] invalid payload: %v", err)
		utils.JSONError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	stay, err := models.ParseDateRange(p.Llegada, p.Salida)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	disponible := ctrl.AvailabilitySvc.IsAvailable(c.Request.Context(), p.Tipo, stay)
	c.JSON(http.StatusOK, gin.H{
		"disponible": disponible,
		"precio":     services.PriceFor(p.Tipo),
	})
}

// CrearPagoMP (POST /api/crear-pago-mp)
func (ctrl *ReservaController) CrearPagoMP(c *gin.Context) {
	log.Println("➡️  [API] POST /crear-pago-mp")

	var p CrearPagoPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		log.Printf("❌ [API] invalid payload: %v", err)
		utils.JSONError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	stay, err := models.ParseDateRange(p.Llegada, p.Salida)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgInvalidFields)
		return
	}

	checkout, err := ctrl.PaymentSvc.StartCheckout(c.Request.Context(), services.BookingRequest{
		Category:   p.Tipo,
		Stay:       stay,
		PayerName:  p.Nombre,
		PayerEmail: p.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingConflict):
			utils.JSONError(c, http.StatusConflict, msgUnavailable)
		default:
			log.Printf("❌ [API] crear-pago-mp failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, msgPaymentFailure)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"initPoint": checkout.InitPoint})
}
