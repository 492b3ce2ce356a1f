package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homebites/backend/internal/service"
)

// ChefHandler serves the chef dashboard aggregates.
type ChefHandler struct {
	orderService service.IOrderService
}

func NewChefHandler(orderService service.IOrderService) *ChefHandler {
	return &ChefHandler{orderService: orderService}
}

func (h *ChefHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.ChefStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *ChefHandler) OrderTrends(c *gin.Context) {
	trends, err := h.orderService.OrderTrends(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute trends"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
