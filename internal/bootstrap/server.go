package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamingoair/flamingo-backend/api"
	"github.com/flamingoair/flamingo-backend/config"
	"github.com/flamingoair/flamingo-backend/internal/auth"
	"github.com/flamingoair/flamingo-backend/internal/service/booking"
	"github.com/flamingoair/flamingo-backend/internal/service/flights"
	"github.com/flamingoair/flamingo-backend/internal/service/payment"
	"github.com/flamingoair/flamingo-backend/internal/service/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Payments payment.PaymentUseCase
	Users    users.UserUseCase
	Guard    *auth.Guard
}

// Run assembles the gin router and serves it until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, svcs Services) error {
	router := NewRouter(cfg, svcs)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to Flamingo Airlines API",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	apiGroup := router.Group("/api")
	api.NewFlightHandler(svcs.Flights, svcs.Guard).Register(apiGroup.Group("/flights"))
	api.NewBookingHandler(svcs.Bookings, svcs.Guard).Register(apiGroup.Group("/bookings"))
	api.NewPaymentHandler(svcs.Payments, svcs.Guard).Register(apiGroup.Group("/payments"))
	api.NewUserHandler(svcs.Users, svcs.Guard).Register(apiGroup.Group("/users"))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}
