package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type StageHandler struct {
	service services.StageService
}

func NewStageHandler(service services.StageService) *StageHandler {
	return &StageHandler{service: service}
}

// GET /workflow-stages
func (h *StageHandler) List(c *gin.Context) {
	stages, err := h.service.List(c.Request.Context())
	if err != nil {
		respondErr(c, "stage.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stages": stages})
}

// POST /workflow-stages
func (h *StageHandler) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stage, err := h.service.Create(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		respondErr(c, "stage.create", err)
		return
	}
	log.Printf("[stage][create][ok] id=%d name=%q order=%d", stage.ID, stage.Name, stage.Order)
	c.JSON(http.StatusCreated, gin.H{"success": true, "stage": stage})
}

// PUT /workflow-stages/:id
func (h *StageHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stage, err := h.service.Update(c.Request.Context(), id, req.Name, req.Color)
	if err != nil {
		respondErr(c, "stage.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stage": stage})
}

// DELETE /workflow-stages/:id
func (h *StageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, "stage.delete", err)
		return
	}
	log.Printf("[stage][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stage deleted"})
}

// PUT /workflow-stages/reorder { "orderedIds": [3,1,2] }
func (h *StageHandler) Reorder(c *gin.Context) {
	var req struct {
		OrderedIDs []int64 `json:"orderedIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderedIds array required"})
		return
	}

	stages, err := h.service.Reorder(c.Request.Context(), req.OrderedIDs)
	if err != nil {
		respondErr(c, "stage.reorder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stages": stages})
}
