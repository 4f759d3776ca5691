package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type AuthHandler struct {
	users services.UserService
	auth  services.AuthService
}

func NewAuthHandler(users services.UserService, auth services.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// @Summary      Register a user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Avatar   string `json:"avatar"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][signup][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.Avatar, req.Role)
	if err != nil {
		respondErr(c, "auth.signup", err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondErr(c, "auth.signup", err)
		return
	}
	log.Printf("[auth][signup][ok] id=%d email=%s", user.ID, user.Email)
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
}

// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondErr(c, "auth.login", err)
		return
	}
	if user == nil || !h.auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Printf("[auth][login][fail] email=%s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondErr(c, "auth.login", err)
		return
	}
	log.Printf("[auth][login][ok] id=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// Logout is stateless: tokens expire on their own, the client drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}
