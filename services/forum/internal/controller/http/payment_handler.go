package http

import (
	"net/http"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/middleware"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{paymentUseCase: paymentUseCase, logger: logger}
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required"`
}

type PaymentRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price" binding:"required"`
	TransactionID string  `json:"transactionId" binding:"required"`
}

// CreateIntent godoc
// @Summary      Create a payment intent
// @Description  Converts the price from major to minor units and returns the processor's client secret
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body PaymentIntentRequest true "Price in major units"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	secret, err := h.paymentUseCase.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

// RecordPayment godoc
// @Summary      Record a completed payment for the caller
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body PaymentRequest true "Payment"
// @Success      201  {object}  map[string]string
// @Router       /payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	payment := &entity.Payment{Name: req.Name, Price: req.Price, TransactionID: req.TransactionID}
	if err := h.paymentUseCase.RecordPayment(c.Request.Context(), middleware.CallerEmail(c), payment); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": payment.ID})
}

// ListPayments godoc
// @Summary      List a member's payments
// @Tags         payments
// @Produce      json
// @Param        email path string true "Member email"
// @Success      200  {array}   entity.Payment
// @Failure      403  {object}  map[string]string
// @Router       /payments/{email} [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentUseCase.ListPayments(c.Request.Context(), middleware.CallerEmail(c), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
