package api

import (
	"net/http"

	"github.com/flamingoair/flamingo-backend/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	guard   Authenticator
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id"`
}

func NewBookingHandler(service booking.BookingUseCase, guard Authenticator) *BookingHandler {
	return &BookingHandler{service: service, guard: guard}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", RequireAuth(h.guard), h.create)
	router.PUT("/cancel/:pnr", RequireAuth(h.guard), h.cancel)
	// Booking status is public: anyone holding the PNR may look it up.
	router.GET("/:pnr", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, _ := callerIdentity(c)
	created, err := h.service.Create(c.Request.Context(), req.FlightID, identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": created,
	})
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking retrieved successfully",
		"booking": found,
	})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	identity, _ := callerIdentity(c)
	cancelled, err := h.service.Cancel(c.Request.Context(), c.Param("pnr"), identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled successfully",
		"booking": cancelled,
	})
}
