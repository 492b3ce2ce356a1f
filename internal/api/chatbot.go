package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/types"
)

// ChatbotHandler proxies questions to the external recommendation agent.
type ChatbotHandler struct {
	chatbotService service.IChatbotService
}

func NewChatbotHandler(chatbotService service.IChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

func (h *ChatbotHandler) Query(c *gin.Context) {
	var req types.ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.chatbotService.Query(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "chatbot is unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", response)
}
