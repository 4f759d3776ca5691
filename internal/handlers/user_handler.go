package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		respondErr(c, "user.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	actor := getActor(c)
	user, err := h.service.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		respondErr(c, "user.me", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor := getActor(c)

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Bio   string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), actor.UserID, req.Name, req.Email, req.Bio)
	if err != nil {
		respondErr(c, "user.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// GET /users/me/stats
func (h *UserHandler) Stats(c *gin.Context) {
	actor := getActor(c)
	stats, err := h.service.Stats(c.Request.Context(), actor.UserID)
	if err != nil {
		respondErr(c, "user.stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
