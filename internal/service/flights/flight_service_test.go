package flights

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/flamingoair/flamingo-backend/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, id int64, patch repository.FlightPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{ID: 1, FlightNumber: "FL101", Source: "Chennai", Destination: "Delhi"},
		{ID: 2, FlightNumber: "FL202", Source: "Mumbai", Destination: "London"},
	}
}

func TestFlightService_List_CacheHit(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, testLogger())

	cache.On("GetFlights", mock.Anything).Return(sampleFlights(), nil)

	flights, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, flights, 2)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, testLogger())

	cache.On("GetFlights", mock.Anything).Return(nil, nil)
	repo.On("List", mock.Anything).Return(sampleFlights(), nil)
	cache.On("SetFlights", mock.Anything, sampleFlights()).Return(nil)

	flights, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, flights, 2)
	cache.AssertExpectations(t)
}

func TestFlightService_Create_Validation(t *testing.T) {
	svc := NewFlightService(&MockFlightRepository{}, nil, testLogger())

	_, err := svc.Create(context.Background(), CreateFlightInput{FlightNumber: "FL101"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestFlightService_Create_DefaultsToDomestic(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, testLogger())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Flight")).Return(nil)
	cache.On("InvalidateFlights", mock.Anything).Return(nil)

	flight, err := svc.Create(context.Background(), CreateFlightInput{
		FlightNumber:  "FL101",
		Source:        "Chennai",
		Destination:   "Delhi",
		DepartureTime: time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC),
		Price:         459,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.FlightTypeDomestic, flight.FlightType)
	cache.AssertCalled(t, "InvalidateFlights", mock.Anything)
}

func TestFlightService_Delete_InvalidatesCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, testLogger())

	repo.On("Delete", mock.Anything, int64(1)).Return(nil)
	cache.On("InvalidateFlights", mock.Anything).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 1))
	cache.AssertExpectations(t)
}

func TestFlightService_Delete_NotFound(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	svc := NewFlightService(repo, cache, testLogger())

	repo.On("Delete", mock.Anything, int64(404)).Return(domain.NewNotFound("flight not found"))

	err := svc.Delete(context.Background(), 404)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
}

func TestFlightService_Search_PassesFilter(t *testing.T) {
	repo := &MockFlightRepository{}
	svc := NewFlightService(repo, nil, testLogger())

	filter := domain.FlightSearch{Source: "Chennai", FlightType: "Domestic"}
	repo.On("Search", mock.Anything, filter).Return(sampleFlights()[:1], nil)

	flights, err := svc.Search(context.Background(), filter)

	assert.NoError(t, err)
	assert.Len(t, flights, 1)
	repo.AssertExpectations(t)
}
