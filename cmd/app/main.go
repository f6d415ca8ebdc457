package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flamingoair/flamingo-backend/config"
	"github.com/flamingoair/flamingo-backend/internal/auth"
	"github.com/flamingoair/flamingo-backend/internal/bootstrap"
	"github.com/flamingoair/flamingo-backend/internal/cache"
	"github.com/flamingoair/flamingo-backend/internal/kafka"
	"github.com/flamingoair/flamingo-backend/internal/repository"
	"github.com/flamingoair/flamingo-backend/internal/service/booking"
	"github.com/flamingoair/flamingo-backend/internal/service/flights"
	"github.com/flamingoair/flamingo-backend/internal/service/payment"
	"github.com/flamingoair/flamingo-backend/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	guard := auth.NewGuard(tokens, userRepo, log)

	svcs := bootstrap.Services{
		Flights:  flights.NewFlightService(flightRepo, redisCache, log),
		Bookings: booking.NewBookingService(bookingRepo, flightRepo, producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic, log),
		Payments: payment.NewPaymentService(paymentRepo, bookingRepo, payment.SimulatedGateway{}, producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic, log),
		Users:    users.NewUserService(userRepo, tokens, log),
		Guard:    guard,
	}

	if err := bootstrap.Run(ctx, cfg, svcs); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
