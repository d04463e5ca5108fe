package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-paradiso/controllers"
	"hotel-paradiso/middleware"
)

const banner = "Servidor de Hotel funcionando con MariaDB/MySQL."

// SetupRouter wires the controllers into the HTTP surface.
func SetupRouter(
	rc *controllers.ReservaController,
	pc *controllers.PagoController,
	nc *controllers.NotificationController,
	corsOrigins []string,
) *gin.Engine {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/verificar-reserva", rc.VerificarReserva)
		api.POST("/crear-pago-mp", rc.CrearPagoMP)

		pago := api.Group("/pago")
		{
			pago.GET("/success", pc.Success)
			pago.GET("/failure", pc.Failure)
			pago.GET("/pending", pc.Pending)
		}

		api.POST("/notificaciones-mp", nc.ReceiveMercadoPago)
	}

	return r
}
