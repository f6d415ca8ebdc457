package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is the central entity. PNR is assigned once at creation and never
// changes; status only moves forward (PENDING -> CONFIRMED -> CANCELLED, or
// straight to CANCELLED) and CANCELLED is terminal.
type Booking struct {
	ID        int64         `json:"id"`
	PNR       string        `json:"pnr"`
	UserID    int64         `json:"user_id"`
	FlightID  int64         `json:"flight_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	// Display fields joined from the flight and owning user, populated on
	// reads. Zero-valued on bare rows.
	FlightNumber   string    `json:"flight_number,omitempty"`
	Source         string    `json:"source,omitempty"`
	Destination    string    `json:"destination,omitempty"`
	DepartureTime  time.Time `json:"departure_time,omitzero"`
	ArrivalTime    time.Time `json:"arrival_time,omitzero"`
	PassengerName  string    `json:"passenger_name,omitempty"`
	PassengerEmail string    `json:"passenger_email,omitempty"`
}
