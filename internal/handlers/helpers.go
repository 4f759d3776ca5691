package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

// tolerant to types in context (int / int64 / float64 / string)
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getActor(c *gin.Context) models.Actor {
	var actor models.Actor
	if id, ok := getInt64FromCtx(c, "user_id"); ok {
		actor.UserID = id
	}
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	return actor
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidInput:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.InvalidAIResponse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondErr maps a service error to its HTTP status. Internal details stay
// in the server log only.
func respondErr(c *gin.Context, tag string, err error) {
	log.Printf("[%s][err] %v", tag, err)
	kind := apperr.KindOf(err)
	if kind == apperr.Unexpected {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(statusForKind(kind), gin.H{"error": apperr.Message(err)})
}
