package email

import (
	"context"

	"github.com/flamingoair/flamingo-backend/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notifications. The current implementation only
// logs; a real SMTP or provider client slots in behind the same method.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.WithFields(logrus.Fields{
		"to":     event.PassengerEmail,
		"event":  event.Type,
		"pnr":    event.PNR,
		"flight": event.FlightID,
	}).Info("sending booking notification email")
	return nil
}
