package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flamingoair/flamingo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, flightID int64, caller *domain.Identity) (*domain.Booking, error) {
	args := m.Called(ctx, flightID, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByPNR(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, code string, caller *domain.Identity) (*domain.Booking, error) {
	args := m.Called(ctx, code, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func bookingRouter(service *MockBookingUseCase, guard Authenticator) http.Handler {
	router := newTestRouter()
	NewBookingHandler(service, guard).Register(router.Group("/api/bookings"))
	return router
}

func TestBookingHandler_Create(t *testing.T) {
	service := &MockBookingUseCase{}
	identity := &domain.Identity{UserID: 5, Role: domain.RoleUser}
	router := bookingRouter(service, &stubGuard{identity: identity})

	created := &domain.Booking{ID: 1, PNR: "AB12CD", UserID: 5, FlightID: 10, Status: domain.BookingStatusPending}
	service.On("Create", mock.Anything, int64(10), identity).Return(created, nil)

	body, _ := json.Marshal(map[string]int64{"flight_id": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "AB12CD")
	service.AssertExpectations(t)
}

func TestBookingHandler_Create_NoToken(t *testing.T) {
	service := &MockBookingUseCase{}
	router := bookingRouter(service, &stubGuard{})

	body, _ := json.Marshal(map[string]int64{"flight_id": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_Create_FlightNotFound(t *testing.T) {
	service := &MockBookingUseCase{}
	identity := &domain.Identity{UserID: 5, Role: domain.RoleUser}
	router := bookingRouter(service, &stubGuard{identity: identity})

	service.On("Create", mock.Anything, int64(404), identity).Return(nil, domain.NewNotFound("flight not found"))

	body, _ := json.Marshal(map[string]int64{"flight_id": 404})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_Get_Public(t *testing.T) {
	service := &MockBookingUseCase{}
	router := bookingRouter(service, &stubGuard{})

	found := &domain.Booking{ID: 1, PNR: "AB12CD", Status: domain.BookingStatusConfirmed}
	service.On("GetByPNR", mock.Anything, "ab12cd").Return(found, nil)

	// No Authorization header: lookup by PNR is public.
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/ab12cd", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIRMED")
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	service := &MockBookingUseCase{}
	router := bookingRouter(service, &stubGuard{})

	service.On("GetByPNR", mock.Anything, "ZZZZZZ").Return(nil, domain.NewNotFound("booking not found with this PNR"))

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/ZZZZZZ", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_Cancel_Forbidden(t *testing.T) {
	service := &MockBookingUseCase{}
	identity := &domain.Identity{UserID: 6, Role: domain.RoleUser}
	router := bookingRouter(service, &stubGuard{identity: identity})

	service.On("Cancel", mock.Anything, "AB12CD", identity).Return(nil, domain.NewForbidden("not authorized to cancel this booking"))

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/cancel/AB12CD", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_Cancel_AlreadyCancelled(t *testing.T) {
	service := &MockBookingUseCase{}
	identity := &domain.Identity{UserID: 5, Role: domain.RoleUser}
	router := bookingRouter(service, &stubGuard{identity: identity})

	service.On("Cancel", mock.Anything, "AB12CD", identity).Return(nil, domain.NewInvalidState("booking is already cancelled"))

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/cancel/AB12CD", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already cancelled")
}

func TestBookingHandler_Cancel_Success(t *testing.T) {
	service := &MockBookingUseCase{}
	identity := &domain.Identity{UserID: 5, Role: domain.RoleUser}
	router := bookingRouter(service, &stubGuard{identity: identity})

	cancelled := &domain.Booking{ID: 1, PNR: "AB12CD", UserID: 5, Status: domain.BookingStatusCancelled}
	service.On("Cancel", mock.Anything, "AB12CD", identity).Return(cancelled, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/cancel/AB12CD", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CANCELLED")
}
