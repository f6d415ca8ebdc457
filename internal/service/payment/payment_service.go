package payment

import (
	"context"
	"time"

	"github.com/flamingoair/flamingo-backend/internal/auth"
	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/flamingoair/flamingo-backend/internal/kafka"
	"github.com/flamingoair/flamingo-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PaymentUseCase interface {
	Pay(ctx context.Context, input PayInput, caller *domain.Identity) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

type PayInput struct {
	BookingID int64   `json:"booking_id"`
	Mode      string  `json:"payment_mode"`
	Amount    float64 `json:"amount"`
}

// Gateway determines the outcome of a payment attempt. The booking promotion
// logic never branches on anything but its result, so a real processor can
// replace the simulated one without touching the lifecycle.
type Gateway interface {
	Charge(ctx context.Context, bookingID int64, mode string, amount float64) (domain.PaymentStatus, error)
}

// SimulatedGateway approves every charge. There is no external processor in
// this system.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(ctx context.Context, bookingID int64, mode string, amount float64) (domain.PaymentStatus, error) {
	return domain.PaymentStatusSuccess, nil
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PaymentService struct {
	payments    repository.PaymentRepository
	bookings    repository.BookingRepository
	gateway     Gateway
	producer    Producer
	eventsTopic string
	notifTopic  string
	log         *logrus.Logger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	gateway Gateway,
	producer Producer,
	eventsTopic, notifTopic string,
	log *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		payments:    payments,
		bookings:    bookings,
		gateway:     gateway,
		producer:    producer,
		eventsTopic: eventsTopic,
		notifTopic:  notifTopic,
		log:         log,
	}
}

func (s *PaymentService) Pay(ctx context.Context, input PayInput, caller *domain.Identity) (*domain.Payment, error) {
	if input.BookingID <= 0 || input.Mode == "" || input.Amount <= 0 {
		return nil, domain.NewValidation("please provide all required fields: booking_id, payment_mode, amount")
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(caller, booking.UserID) {
		return nil, domain.NewForbidden("not authorized to make payment for this booking")
	}
	// Fast path; the repository re-checks under a row lock before committing.
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.NewInvalidState("booking is cancelled")
	}

	outcome, err := s.gateway.Charge(ctx, input.BookingID, input.Mode, input.Amount)
	if err != nil {
		return nil, domain.NewUnavailable("payment processing failed")
	}

	payment := &domain.Payment{
		Reference: uuid.NewString(),
		BookingID: input.BookingID,
		Mode:      input.Mode,
		Amount:    input.Amount,
		Status:    outcome,
	}

	// The repository re-checks the no-prior-SUCCESS precondition under a row
	// lock and promotes the booking in the same transaction.
	if err := s.payments.CreateForBooking(ctx, payment); err != nil {
		return nil, err
	}

	payment.PNR = booking.PNR
	payment.FlightID = booking.FlightID
	payment.BookingStatus = booking.Status
	if outcome == domain.PaymentStatusSuccess {
		payment.BookingStatus = domain.BookingStatusConfirmed
		s.publishConfirmed(ctx, booking, caller)
	}
	return payment, nil
}

func (s *PaymentService) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if bookingID <= 0 {
		return nil, domain.NewValidation("booking ID is required")
	}
	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, domain.NewNotFound("no payments found for this booking")
	}
	return payments, nil
}

func (s *PaymentService) publishConfirmed(ctx context.Context, booking *domain.Booking, caller *domain.Identity) {
	if s.producer == nil {
		return
	}
	event := kafka.BookingEvent{
		Type:           kafka.EventBookingConfirmed,
		PNR:            booking.PNR,
		BookingID:      booking.ID,
		FlightID:       booking.FlightID,
		UserID:         booking.UserID,
		PassengerEmail: caller.Email,
		Status:         string(domain.BookingStatusConfirmed),
		OccurredAt:     time.Now(),
	}
	for _, topic := range []string{s.eventsTopic, s.notifTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, booking.PNR, event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"pnr": booking.PNR, "topic": topic}).
				Warn("failed to publish booking_confirmed event")
		}
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
