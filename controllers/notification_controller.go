package controllers

import (
	"io"
	"log"
	"net/http"
	"time"

	"hotel-paradiso/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationSvc *services.NotificationService
	WebhookSecret   string
	Now             func() time.Time
}

func NewNotificationController(svc *services.NotificationService, webhookSecret string) *NotificationController {
	return &NotificationController{NotificationSvc: svc, WebhookSecret: webhookSecret, Now: time.Now}
}

// ReceiveMercadoPago (POST /api/notificaciones-mp)
func (ctrl *NotificationController) ReceiveMercadoPago(c *gin.Context) {
	log.Println("🔔 [MP NOTIFICATION] notification received")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("Error reading request body: %v", err)
		c.String(http.StatusBadRequest, "ERROR")
		return
	}

	n := services.ParseNotification(body, c.Request.URL.Query())

	// Legacy IPN (?topic=&id=) is never signed. It is accepted unsigned because
	// Process reads the payment state from the provider, not from the body.
	legacyIPN := c.Query("topic") != "" && c.GetHeader("x-signature") == ""

	if ctrl.WebhookSecret != "" && !legacyIPN {
		dataID := c.Query("data.id")
		if dataID == "" {
			dataID = n.ResourceID
		}
		if err := services.VerifyWebhookSignature(ctrl.WebhookSecret, c.GetHeader("x-signature"), c.GetHeader("x-request-id"), dataID, ctrl.Now()); err != nil {
			log.Printf("❌ [MP NOTIFICATION] signature rejected: %v", err)
			c.String(http.StatusUnauthorized, "INVALID SIGNATURE")
			return
		}
	}

	outcome, err := ctrl.NotificationSvc.Process(c.Request.Context(), n)
	if err != nil {
		log.Printf("❌ [MP NOTIFICATION] processing failed, provider will retry: %v", err)
		c.String(http.StatusInternalServerError, "ERROR")
		return
	}

	log.Printf("🔔 [MP NOTIFICATION] outcome=%s", outcome)
	c.String(http.StatusOK, "OK")
}
