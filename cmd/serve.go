package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"hotel-paradiso/config"
	"hotel-paradiso/controllers"
	"hotel-paradiso/routes"
	"hotel-paradiso/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the hold sweeper",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the API never serves without a working store
	db, err := config.ConnectDatabase(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database connect failed: %w", err)
	}
	defer config.CloseDatabase(db)

	if err := config.EnsureSchema(db); err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}

	gateway, err := services.NewMercadoPagoGateway(services.MercadoPagoOptions{
		AccessToken:     cfg.MercadoPago.AccessToken,
		Timeout:         cfg.MercadoPago.Timeout,
		SuccessURL:      cfg.MercadoPago.SuccessURL,
		FailureURL:      cfg.MercadoPago.FailureURL,
		PendingURL:      cfg.MercadoPago.PendingURL,
		NotificationURL: cfg.MercadoPago.NotificationURL,
	})
	if err != nil {
		return fmt.Errorf("mercadopago client init failed: %w", err)
	}

	// Initialize services
	availabilityService := services.NewAvailabilityService(db, cfg.HoldTTL)
	paymentService := services.NewPaymentService(availabilityService, gateway, cfg.MercadoPago.CurrencyID)
	notificationService := services.NewNotificationService(db, gateway, availabilityService)

	sweeper, err := services.NewHoldSweeper(availabilityService, cfg.HoldSweepInterval)
	if err != nil {
		return fmt.Errorf("hold sweeper init failed: %w", err)
	}
	sweeper.Start()
	defer func() {
		if err := sweeper.Shutdown(); err != nil {
			log.Printf("warning: hold sweeper shutdown: %v", err)
		}
	}()

	// Initialize controllers
	reservaController := controllers.NewReservaController(availabilityService, paymentService)
	pagoController := controllers.NewPagoController(cfg.FrontendURL)
	notificationController := controllers.NewNotificationController(notificationService, cfg.MercadoPago.WebhookSecret)

	router := routes.SetupRouter(reservaController, pagoController, notificationController, cfg.CORSOrigins)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server listening on http://localhost%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Println("⚠️  Shutdown signal received, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}
