package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/flamingoair/flamingo-backend/internal/auth"
	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/flamingoair/flamingo-backend/internal/kafka"
	"github.com/flamingoair/flamingo-backend/internal/pnr"
	"github.com/flamingoair/flamingo-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Create(ctx context.Context, flightID int64, caller *domain.Identity) (*domain.Booking, error)
	GetByPNR(ctx context.Context, code string) (*domain.Booking, error)
	Cancel(ctx context.Context, code string, caller *domain.Identity) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// insertAttempts bounds the regenerate-and-reinsert loop that backstops the
// pnr unique constraint when two concurrent creates pick the same candidate.
const insertAttempts = 3

type BookingService struct {
	bookings    repository.BookingRepository
	flights     repository.FlightRepository
	producer    Producer
	eventsTopic string
	notifTopic  string
	log         *logrus.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	eventsTopic, notifTopic string,
	log *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:    bookings,
		flights:     flights,
		producer:    producer,
		eventsTopic: eventsTopic,
		notifTopic:  notifTopic,
		log:         log,
	}
}

func (s *BookingService) Create(ctx context.Context, flightID int64, caller *domain.Identity) (*domain.Booking, error) {
	if flightID <= 0 {
		return nil, domain.NewValidation("flight ID is required")
	}

	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:   caller.UserID,
		FlightID: flight.ID,
	}

	for attempt := 0; attempt < insertAttempts; attempt++ {
		code, err := pnr.Generate(ctx, s.bookings.PNRExists)
		if err != nil {
			return nil, err
		}
		booking.PNR = code

		err = s.bookings.Create(ctx, booking)
		if errors.Is(err, repository.ErrDuplicatePNR) {
			s.log.WithField("pnr", code).Warn("pnr collided on insert, regenerating")
			continue
		}
		if err != nil {
			return nil, err
		}

		booking.FlightNumber = flight.FlightNumber
		booking.Source = flight.Source
		booking.Destination = flight.Destination
		booking.DepartureTime = flight.DepartureTime
		booking.ArrivalTime = flight.ArrivalTime
		booking.PassengerName = caller.Name
		booking.PassengerEmail = caller.Email

		s.publish(ctx, kafka.EventBookingCreated, booking)
		return booking, nil
	}

	return nil, domain.NewUnavailable("could not allocate a unique PNR")
}

func (s *BookingService) GetByPNR(ctx context.Context, code string) (*domain.Booking, error) {
	if code == "" {
		return nil, domain.NewValidation("PNR is required")
	}
	return s.bookings.GetByPNR(ctx, strings.ToUpper(code))
}

func (s *BookingService) Cancel(ctx context.Context, code string, caller *domain.Identity) (*domain.Booking, error) {
	if code == "" {
		return nil, domain.NewValidation("PNR is required")
	}
	code = strings.ToUpper(code)

	current, err := s.bookings.GetByPNR(ctx, code)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(caller, current.UserID) {
		return nil, domain.NewForbidden("not authorized to cancel this booking")
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.NewInvalidState("booking is already cancelled")
	}

	// The conditional UPDATE inside Cancel decides the race when two cancels
	// pass the check above at the same time; only one of them wins.
	if err := s.bookings.Cancel(ctx, code); err != nil {
		return nil, err
	}
	current.Status = domain.BookingStatusCancelled

	s.publish(ctx, kafka.EventBookingCancelled, current)
	return current, nil
}

// publish fans the lifecycle event out to the durable events stream and to the
// notifications topic the worker consumes. Either topic may be left unset.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil {
		return
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		PNR:            booking.PNR,
		BookingID:      booking.ID,
		FlightID:       booking.FlightID,
		UserID:         booking.UserID,
		PassengerEmail: booking.PassengerEmail,
		Status:         string(booking.Status),
		OccurredAt:     time.Now(),
	}
	for _, topic := range []string{s.eventsTopic, s.notifTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, booking.PNR, event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"pnr": booking.PNR, "topic": topic}).
				Warnf("failed to publish %s event", eventType)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
