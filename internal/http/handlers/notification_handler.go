// README: Notification feed handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/http/middleware"
	"speedyrider/internal/modules/notification"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	feed, err := h.notifications.List(c.Request.Context(), middleware.CallerRiderID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": feed})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notifications.MarkRead(c.Request.Context(), middleware.CallerRiderID(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
