package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[task][create] call by userID=%d role=%s", actor.UserID, actor.Role)

	var req struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Priority    models.TaskPriority `json:"priority"`
		AssignedTo  int64               `json:"assigned_to" binding:"required"`
		DueDate     string              `json:"due_date"` // RFC3339
		StageID     int64               `json:"workflow_stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
			return
		}
		due = &t
	}

	task, err := h.service.Create(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssignedTo,
		DueDate:     due,
		StageID:     req.StageID,
	}, actor)
	if err != nil {
		respondErr(c, "task.create", err)
		return
	}
	log.Printf("[task][create][ok] id=%d assignee=%d title=%q", task.ID, task.AssigneeID, task.Title)
	c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		p := models.TaskPriority(v)
		filter.Priority = &p
	}
	if v, ok := c.GetQuery("assigned_to"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssigneeID = &id
		}
	}
	if v, ok := c.GetQuery("created_by"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CreatorID = &id
		}
	}
	if v, ok := c.GetQuery("workflow_stage"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.StageID = &id
		}
	}
	if v, ok := c.GetQuery("search"); ok {
		s := v
		filter.TitleContains = &s
	}

	tasks, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, "task.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": len(tasks), "tasks": tasks})
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, "task.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// PUT /tasks/:id — restricted merge; status and stage are not updatable here
func (h *TaskHandler) Update(c *gin.Context) {
	actor := getActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Priority    *models.TaskPriority `json:"priority"`
		AssignedTo  *int64               `json:"assigned_to"`
		DueDate     *string              `json:"due_date"` // RFC3339; "" clears
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssignedTo,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDue = true
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date"})
				return
			}
			patch.DueDate = &t
		}
	}

	task, err := h.service.Update(c.Request.Context(), id, patch, actor)
	if err != nil {
		respondErr(c, "task.update", err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	actor := getActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		respondErr(c, "task.delete", err)
		return
	}
	log.Printf("[task][delete][ok] id=%d by=%d", id, actor.UserID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}

// POST /tasks/:id/status { "workflow_stage_id": 3 }
func (h *TaskHandler) ChangeStage(c *gin.Context) {
	actor := getActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		StageID int64 `json:"workflow_stage_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.ChangeStage(c.Request.Context(), id, body.StageID, actor)
	if err != nil {
		respondErr(c, "task.status", err)
		return
	}
	log.Printf("[task][status][ok] id=%d stage=%d status=%s", id, body.StageID, task.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// POST /tasks/:id/assign { "assigned_to": 2 }
func (h *TaskHandler) Assign(c *gin.Context) {
	actor := getActor(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		AssignedTo int64 `json:"assigned_to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.Reassign(c.Request.Context(), id, body.AssignedTo, actor)
	if err != nil {
		respondErr(c, "task.assign", err)
		return
	}
	log.Printf("[task][assign][ok] id=%d assignee=%d", id, body.AssignedTo)
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

// POST /tasks/:id/subtasks
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtasks, err := h.service.AddSubtask(c.Request.Context(), id, body.Title)
	if err != nil {
		respondErr(c, "task.subtask.add", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subtasks": subtasks})
}

// PUT /tasks/:id/subtasks/:subId
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	subID, ok := pathID(c, "subId")
	if !ok {
		return
	}
	var body struct {
		Title  *string `json:"title"`
		IsDone *bool   `json:"is_done"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtasks, err := h.service.UpdateSubtask(c.Request.Context(), taskID, subID, body.Title, body.IsDone)
	if err != nil {
		respondErr(c, "task.subtask.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subtasks": subtasks})
}

// DELETE /tasks/:id/subtasks/:subId
func (h *TaskHandler) DeleteSubtask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	subID, ok := pathID(c, "subId")
	if !ok {
		return
	}
	subtasks, err := h.service.DeleteSubtask(c.Request.Context(), taskID, subID)
	if err != nil {
		respondErr(c, "task.subtask.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subtasks": subtasks})
}

// @Summary      Task risk analysis
// @Description  Deterministic risk score refined with an AI explanation
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /tasks/{id}/risk [get]
func (h *TaskHandler) Risk(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	risk, explanation, err := h.service.Risk(c.Request.Context(), id)
	if err != nil {
		respondErr(c, "task.risk", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"risk": gin.H{
			"score":           risk.Score,
			"level":           risk.Level,
			"signals":         risk.Signals,
			"summary":         explanation.Summary,
			"reasons":         explanation.Reasons,
			"suggestedAction": explanation.SuggestedAction,
		},
	})
}

// POST /tasks/nlp { "text": "remind Bob to ship the release by friday" }
func (h *TaskHandler) CreateFromNLP(c *gin.Context) {
	actor := getActor(c)

	var body struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.CreateFromText(c.Request.Context(), body.Text, actor)
	if err != nil {
		respondErr(c, "task.nlp", err)
		return
	}
	log.Printf("[task][nlp][ok] id=%d title=%q", task.ID, task.Title)
	c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}
