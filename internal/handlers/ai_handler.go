package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/ai"
)

type AIHandler struct {
	client *ai.Client
}

func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

// @Summary      Enhance a task description
// @Tags         AI
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /ai/enhance-task [post]
func (h *AIHandler) EnhanceTask(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.EnhanceTask(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondErr(c, "ai.enhance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "enhancement": result})
}

// POST /ai/suggest-subtasks
func (h *AIHandler) SuggestSubtasks(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.SuggestSubtasks(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondErr(c, "ai.subtasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subtasks": result.Subtasks})
}
