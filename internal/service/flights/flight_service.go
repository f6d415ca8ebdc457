package flights

import (
	"context"
	"time"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/flamingoair/flamingo-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, patch repository.FlightPatch) error
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	FlightNumber  string    `json:"flight_number"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Price         float64   `json:"price"`
	FlightType    string    `json:"flight_type"`
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
	log   *logrus.Logger
}

func NewFlightService(repo repository.FlightRepository, cache Cache, log *logrus.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.WithError(err).Warn("failed to cache flight list")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	return s.repo.Search(ctx, filter)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.FlightNumber == "" || input.Source == "" || input.Destination == "" ||
		input.DepartureTime.IsZero() || input.ArrivalTime.IsZero() || input.Price <= 0 {
		return nil, domain.NewValidation("please provide all required fields")
	}

	flightType := domain.FlightType(input.FlightType)
	if flightType == "" {
		flightType = domain.FlightTypeDomestic
	}

	flight := &domain.Flight{
		FlightNumber:  input.FlightNumber,
		Source:        input.Source,
		Destination:   input.Destination,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Price:         input.Price,
		FlightType:    flightType,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, patch repository.FlightPatch) error {
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes the flight outright. Bookings referencing it are left in
// place and render with empty flight fields.
func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.WithError(err).Warn("failed to invalidate flight cache")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
