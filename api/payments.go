package api

import (
	"net/http"
	"strconv"

	"github.com/flamingoair/flamingo-backend/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
	guard   Authenticator
}

func NewPaymentHandler(service payment.PaymentUseCase, guard Authenticator) *PaymentHandler {
	return &PaymentHandler{service: service, guard: guard}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/", RequireAuth(h.guard), h.pay)
	router.GET("/:bookingId", h.list)
}

func (h *PaymentHandler) pay(c *gin.Context) {
	var req payment.PayInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, _ := callerIdentity(c)
	created, err := h.service.Pay(c.Request.Context(), req, identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment successful",
		"payment": created,
	})
}

func (h *PaymentHandler) list(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	payments, err := h.service.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payments retrieved successfully",
		"payments": payments,
	})
}
