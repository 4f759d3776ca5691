package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type ActivityHandler struct {
	service services.ActivityService
}

func NewActivityHandler(service services.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GET /activities?limit=40
func (h *ActivityHandler) Feed(c *gin.Context) {
	limit := 0
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	items, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, "activity.feed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "activities": items})
}

// GET /tasks/:id/activities
func (h *ActivityHandler) ForTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit := services.DefaultFeedLimit
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.service.Recent(c.Request.Context(), taskID, limit)
	if err != nil {
		respondErr(c, "activity.task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "activities": items})
}
