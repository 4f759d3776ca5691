package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/ai"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/authz"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

// riskActivityWindow is how many recent activities feed the risk analyzer.
const riskActivityWindow = 10

// AIAssist is the slice of the AI capability the task lifecycle needs.
type AIAssist interface {
	ExplainTaskRisk(ctx context.Context, risk models.RiskResult) (*ai.RiskExplanation, error)
	ParseTaskFromText(ctx context.Context, text string, users []models.User) (*ai.ParsedTask, error)
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	AssigneeID  int64
	DueDate     *time.Time
	StageID     int64
}

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput, actor models.Actor) (*models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch, actor models.Actor) (*models.Task, error)
	Delete(ctx context.Context, id int64, actor models.Actor) error
	ChangeStage(ctx context.Context, id, stageID int64, actor models.Actor) (*models.Task, error)
	Reassign(ctx context.Context, id, assigneeID int64, actor models.Actor) (*models.Task, error)

	AddSubtask(ctx context.Context, taskID int64, title string) ([]models.Subtask, error)
	UpdateSubtask(ctx context.Context, taskID, subtaskID int64, title *string, isDone *bool) ([]models.Subtask, error)
	DeleteSubtask(ctx context.Context, taskID, subtaskID int64) ([]models.Subtask, error)

	Risk(ctx context.Context, id int64) (models.RiskResult, *ai.RiskExplanation, error)
	CreateFromText(ctx context.Context, text string, actor models.Actor) (*models.Task, error)
}

type taskService struct {
	repo     repositories.TaskRepository
	stages   repositories.StageRepository
	users    repositories.UserRepository
	notifier NotificationService
	activity ActivityService
	assist   AIAssist
}

func NewTaskService(
	repo repositories.TaskRepository,
	stages repositories.StageRepository,
	users repositories.UserRepository,
	notifier NotificationService,
	activity ActivityService,
	assist AIAssist,
) TaskService {
	return &taskService{
		repo:     repo,
		stages:   stages,
		users:    users,
		notifier: notifier,
		activity: activity,
		assist:   assist,
	}
}

// notify is the fire-and-forget half of the side-effect contract: the
// primary mutation is already persisted, so a failed notification is logged
// and swallowed.
func (s *taskService) notify(ctx context.Context, recipientID int64, message string, taskID int64) {
	if _, err := s.notifier.Notify(ctx, recipientID, message, &taskID); err != nil {
		log.Printf("[task][notify][err] recipient=%d task=%d: %v", recipientID, taskID, err)
	}
}

func (s *taskService) mustGet(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.New(apperr.NotFound, "task not found")
	}
	return task, nil
}

func canManage(task *models.Task, actor models.Actor) bool {
	return task.CreatorID == actor.UserID || authz.IsElevated(actor.Role)
}

func canMove(task *models.Task, actor models.Actor) bool {
	return task.CreatorID == actor.UserID ||
		task.AssigneeID == actor.UserID ||
		authz.IsElevated(actor.Role)
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput, actor models.Actor) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.New(apperr.InvalidInput, "title is required")
	}
	if input.AssigneeID == 0 {
		return nil, apperr.New(apperr.InvalidInput, "assignedTo is required")
	}
	if input.StageID == 0 {
		return nil, apperr.New(apperr.InvalidInput, "workflowStage is required")
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.IsValidPriority(input.Priority) {
		return nil, apperr.New(apperr.InvalidInput, "invalid priority")
	}

	stage, err := s.stages.FindByID(ctx, input.StageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid workflow stage")
	}
	assignee, err := s.users.FindByID(ctx, input.AssigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, apperr.New(apperr.InvalidInput, "assignee does not exist")
	}

	now := time.Now()
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      DeriveStatus(stage.Name),
		CreatorID:   actor.UserID,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
		StageID:     input.StageID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}

	s.notify(ctx, task.AssigneeID, fmt.Sprintf("You have been assigned a new task: %q", task.Title), task.ID)
	s.activity.Log(ctx, models.ActionTaskCreated, actor.UserID, &task.ID, fmt.Sprintf("Created task %q", task.Title))

	return s.mustGet(ctx, task.ID)
}

func (s *taskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	return s.mustGet(ctx, id)
}

func (s *taskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, patch models.TaskPatch, actor models.Actor) (*models.Task, error) {
	task, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(task, actor) {
		return nil, apperr.New(apperr.Forbidden, "not authorized to update this task")
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, apperr.New(apperr.InvalidInput, "title cannot be empty")
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !models.IsValidPriority(*patch.Priority) {
			return nil, apperr.New(apperr.InvalidInput, "invalid priority")
		}
		task.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		assignee, err := s.users.FindByID(ctx, *patch.AssigneeID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, apperr.New(apperr.InvalidInput, "assignee does not exist")
		}
		task.AssigneeID = *patch.AssigneeID
	}
	if patch.ClearDue {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.notify(ctx, task.AssigneeID, fmt.Sprintf("Task %q was updated", task.Title), task.ID)
	s.activity.Log(ctx, models.ActionTaskUpdated, actor.UserID, &task.ID, "Updated task")

	return s.mustGet(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id int64, actor models.Actor) error {
	task, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(task, actor) {
		return apperr.New(apperr.Forbidden, "not authorized to delete this task")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// prior notifications/activities referencing the task are retained
	s.notify(ctx, task.AssigneeID, fmt.Sprintf("Task %q was deleted", task.Title), task.ID)
	s.activity.Log(ctx, models.ActionTaskDeleted, actor.UserID, &id, "Deleted task")
	return nil
}

func (s *taskService) ChangeStage(ctx context.Context, id, stageID int64, actor models.Actor) (*models.Task, error) {
	task, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMove(task, actor) {
		return nil, apperr.New(apperr.Forbidden, "not authorized")
	}

	stage, err := s.stages.FindByID(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid workflow stage")
	}

	// status is derived from the stage name at this moment; later stage
	// renames do not reclassify the task
	status := DeriveStatus(stage.Name)
	if err := s.repo.UpdateStage(ctx, id, stageID, status); err != nil {
		return nil, err
	}

	s.notify(ctx, task.AssigneeID, fmt.Sprintf("Task %q moved to %s", task.Title, stage.Name), task.ID)
	s.activity.Log(ctx, models.ActionStatusChanged, actor.UserID, &id, fmt.Sprintf("Moved to %s", stage.Name))

	return s.mustGet(ctx, id)
}

func (s *taskService) Reassign(ctx context.Context, id, assigneeID int64, actor models.Actor) (*models.Task, error) {
	task, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	// stricter than ChangeStage: the current assignee alone cannot hand the
	// task to someone else
	if !canManage(task, actor) {
		return nil, apperr.New(apperr.Forbidden, "not authorized")
	}

	assignee, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, apperr.New(apperr.InvalidInput, "assignee does not exist")
	}

	if err := s.repo.UpdateAssignee(ctx, id, assigneeID); err != nil {
		return nil, err
	}

	s.notify(ctx, assigneeID, fmt.Sprintf("You have been assigned task %q", task.Title), task.ID)
	s.activity.Log(ctx, models.ActionTaskAssigned, actor.UserID, &id, fmt.Sprintf("Assigned to %s", assignee.Name))

	return s.mustGet(ctx, id)
}

func (s *taskService) AddSubtask(ctx context.Context, taskID int64, title string) ([]models.Subtask, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.New(apperr.InvalidInput, "subtask title is required")
	}
	if _, err := s.mustGet(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.repo.AddSubtask(ctx, taskID, title); err != nil {
		return nil, err
	}
	return s.repo.ListSubtasks(ctx, taskID)
}

func (s *taskService) UpdateSubtask(ctx context.Context, taskID, subtaskID int64, title *string, isDone *bool) ([]models.Subtask, error) {
	if _, err := s.mustGet(ctx, taskID); err != nil {
		return nil, err
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, apperr.New(apperr.InvalidInput, "subtask title cannot be empty")
	}
	found, err := s.repo.UpdateSubtask(ctx, taskID, subtaskID, title, isDone)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.New(apperr.NotFound, "subtask not found")
	}
	return s.repo.ListSubtasks(ctx, taskID)
}

func (s *taskService) DeleteSubtask(ctx context.Context, taskID, subtaskID int64) ([]models.Subtask, error) {
	if _, err := s.mustGet(ctx, taskID); err != nil {
		return nil, err
	}
	found, err := s.repo.DeleteSubtask(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.New(apperr.NotFound, "subtask not found")
	}
	return s.repo.ListSubtasks(ctx, taskID)
}

func (s *taskService) Risk(ctx context.Context, id int64) (models.RiskResult, *ai.RiskExplanation, error) {
	task, err := s.mustGet(ctx, id)
	if err != nil {
		return models.RiskResult{}, nil, err
	}
	activities, err := s.activity.Recent(ctx, id, riskActivityWindow)
	if err != nil {
		return models.RiskResult{}, nil, err
	}

	risk := AnalyzeTaskRisk(task, activities, time.Now())

	explanation, err := s.assist.ExplainTaskRisk(ctx, risk)
	if err != nil {
		return models.RiskResult{}, nil, err
	}
	return risk, explanation, nil
}

func (s *taskService) CreateFromText(ctx context.Context, text string, actor models.Actor) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.InvalidInput, "text is required")
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := s.assist.ParseTaskFromText(ctx, text, users)
	if err != nil {
		return nil, err
	}

	var assignee *models.User
	for i := range users {
		if parsed.AssigneeName != "" && strings.EqualFold(users[i].Name, parsed.AssigneeName) {
			assignee = &users[i]
			break
		}
	}
	if assignee == nil {
		return nil, apperr.New(apperr.InvalidInput, "assignee not found")
	}

	stages, err := s.stages.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "no workflow stage found")
	}
	stage := stages[0]

	priority := models.TaskPriority(parsed.Priority)
	if !models.IsValidPriority(priority) {
		priority = models.PriorityMedium
	}

	var due *time.Time
	if parsed.DueDate != "" && parsed.DueDate != "null" {
		if t, err := time.Parse(time.RFC3339, parsed.DueDate); err == nil {
			due = &t
		}
	}

	now := time.Now()
	task := &models.Task{
		Title:       parsed.Title,
		Description: parsed.Description,
		Priority:    priority,
		Status:      models.StatusTodo, // NLP-created tasks start in todo
		CreatorID:   actor.UserID,
		AssigneeID:  assignee.ID,
		DueDate:     due,
		StageID:     stage.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if strings.TrimSpace(task.Title) == "" {
		return nil, apperr.New(apperr.InvalidAIResponse, "invalid AI response format")
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}

	s.activity.Log(ctx, models.ActionTaskCreatedNLP, actor.UserID, &task.ID, "Created via NLP")

	return s.mustGet(ctx, task.ID)
}
