package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is an attempt record: inserted once, never mutated. A booking may
// accumulate FAILED attempts but carries at most one SUCCESS row.
type Payment struct {
	ID        int64         `json:"id"`
	Reference string        `json:"reference"`
	BookingID int64         `json:"booking_id"`
	Mode      string        `json:"payment_mode"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"payment_status"`
	CreatedAt time.Time     `json:"created_at"`

	// Joined from the booking on reads.
	PNR           string        `json:"pnr,omitempty"`
	FlightID      int64         `json:"flight_id,omitempty"`
	BookingStatus BookingStatus `json:"booking_status,omitempty"`
}
