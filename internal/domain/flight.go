package domain

import "time"

type FlightType string

const (
	FlightTypeDomestic      FlightType = "Domestic"
	FlightTypeInternational FlightType = "International"
)

type Flight struct {
	ID            int64      `json:"id"`
	FlightNumber  string     `json:"flight_number"`
	Source        string     `json:"source"`
	Destination   string     `json:"destination"`
	DepartureTime time.Time  `json:"departure_time"`
	ArrivalTime   time.Time  `json:"arrival_time"`
	Price         float64    `json:"price"`
	FlightType    FlightType `json:"flight_type"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FlightSearch holds optional search filters; empty fields are skipped.
type FlightSearch struct {
	Source        string
	Destination   string
	DepartureDate string
	FlightType    string
}
