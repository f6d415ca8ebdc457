package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBookingEvent(t *testing.T) {
	occurred := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(BookingEvent{
		Type:           EventBookingConfirmed,
		PNR:            "AB12CD",
		BookingID:      3,
		FlightID:       10,
		UserID:         5,
		PassengerEmail: "ravi@example.com",
		Status:         "CONFIRMED",
		OccurredAt:     occurred,
	})
	assert.NoError(t, err)

	event, err := decodeBookingEvent(payload)

	assert.NoError(t, err)
	assert.Equal(t, EventBookingConfirmed, event.Type)
	assert.Equal(t, "AB12CD", event.PNR)
	assert.Equal(t, int64(3), event.BookingID)
	assert.True(t, occurred.Equal(event.OccurredAt))
}

func TestDecodeBookingEvent_Malformed(t *testing.T) {
	_, err := decodeBookingEvent([]byte("not-json"))
	assert.Error(t, err)
}
