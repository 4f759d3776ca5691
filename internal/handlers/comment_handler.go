package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type CommentHandler struct {
	service services.CommentService
}

func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// GET /tasks/:id/comments
func (h *CommentHandler) ListForTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.ListForTask(c.Request.Context(), taskID)
	if err != nil {
		respondErr(c, "comment.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// POST /tasks/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	actor := getActor(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.service.Add(c.Request.Context(), taskID, actor, body.Content)
	if err != nil {
		respondErr(c, "comment.add", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

// PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actor := getActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.service.Update(c.Request.Context(), id, actor, body.Content)
	if err != nil {
		respondErr(c, "comment.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comment": comment})
}

// DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actor := getActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		respondErr(c, "comment.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted"})
}
