package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/homebites/backend/internal/realtime"
	"github.com/homebites/backend/internal/service"
)

// NotificationHandler serves the notification feed and the websocket
// endpoint that streams new notifications to connected clients.
type NotificationHandler struct {
	notificationService service.INotificationService
	hub                 *realtime.Hub
	upgrader            websocket.Upgrader
}

func NewNotificationHandler(notificationService service.INotificationService, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		hub:                 hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin access is enforced by the CORS layer and the
			// cookie-based auth on the upgrade request itself.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationService.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked read"})
}

type wsInbound struct {
	Type string `json:"type"`
}

// Serve upgrades the request and keeps the connection registered until the
// client disconnects. The only inbound message handled is mark_all_read;
// everything else is ignored.
func (h *NotificationHandler) Serve(c *gin.Context) {
	userID := currentUserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for user %s: %v", userID, err)
		return
	}

	client := &realtime.Client{UserID: userID, Conn: conn}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var inbound wsInbound
		if err := json.Unmarshal(msg, &inbound); err != nil {
			continue
		}
		if inbound.Type == "mark_all_read" {
			if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
				log.Printf("websocket mark_all_read failed for user %s: %v", userID, err)
			}
		}
	}
}
