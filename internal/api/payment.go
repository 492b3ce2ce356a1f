package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/types"
)

// PaymentHandler bridges checkout to the payment gateway.
type PaymentHandler struct {
	paymentService service.IPaymentService
}

func NewPaymentHandler(paymentService service.IPaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req types.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create payment session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetCheckoutSession reports the gateway status for a session; polling this
// after redirect is how the frontend learns the payment settled.
func (h *PaymentHandler) GetCheckoutSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
		return
	}

	status, paid, err := h.paymentService.GetCheckoutSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to look up payment session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "paid": paid})
}
