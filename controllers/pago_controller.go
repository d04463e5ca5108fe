package controllers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// PagoController sends the payer back to the frontend after checkout.
type PagoController struct {
	FrontendURL string
}

func NewPagoController(frontendURL string) *PagoController {
	return &PagoController{FrontendURL: frontendURL}
}

// Success (GET /api/pago/success)
func (ctrl *PagoController) Success(c *gin.Context) {
	log.Println("➡️  [API] payment success return, redirecting to frontend")
	ctrl.redirect(c, url.Values{"pago": {"exitoso"}, "ref": {c.Query("payment_id")}})
}

// Failure (GET /api/pago/failure)
func (ctrl *PagoController) Failure(c *gin.Context) {
	log.Println("➡️  [API] payment failure return")
	ctrl.redirect(c, url.Values{"pago": {"fallido"}})
}

// Pending (GET /api/pago/pending)
func (ctrl *PagoController) Pending(c *gin.Context) {
	log.Println("➡️  [API] payment pending return")
	ctrl.redirect(c, url.Values{"pago": {"pendiente"}})
}

func (ctrl *PagoController) redirect(c *gin.Context, params url.Values) {
	c.Redirect(http.StatusFound, FrontendRedirectURL(ctrl.FrontendURL, params))
}

// FrontendRedirectURL appends params to base, keeping any query base has.
func FrontendRedirectURL(base string, params url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + params.Encode()
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
