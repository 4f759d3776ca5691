package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type NotificationHandler struct {
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GET /notifications?limit=50
func (h *NotificationHandler) List(c *gin.Context) {
	actor := getActor(c)
	limit := 0
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	items, err := h.service.ListFor(c.Request.Context(), actor.UserID, limit)
	if err != nil {
		respondErr(c, "notification.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items})
}

// PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		respondErr(c, "notification.read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := getActor(c)
	if err := h.service.MarkAllRead(c.Request.Context(), actor.UserID); err != nil {
		respondErr(c, "notification.read_all", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
