package services

import (
	"context"
	"strings"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

type StageService interface {
	Create(ctx context.Context, name, color string) (*models.WorkflowStage, error)
	Update(ctx context.Context, id int64, name, color *string) (*models.WorkflowStage, error)
	// Delete fails with Conflict while any task references the stage.
	// On success the remaining stages are recompacted to a dense 1..N order.
	Delete(ctx context.Context, id int64) error
	// Reorder requires the full set of existing stage ids; partial lists are
	// rejected so order values can never go stale or collide.
	Reorder(ctx context.Context, orderedIDs []int64) ([]models.WorkflowStage, error)
	List(ctx context.Context) ([]models.WorkflowStage, error)
}

type stageService struct {
	repo  repositories.StageRepository
	tasks repositories.TaskRepository
}

func NewStageService(repo repositories.StageRepository, tasks repositories.TaskRepository) StageService {
	return &stageService{repo: repo, tasks: tasks}
}

func (s *stageService) Create(ctx context.Context, name, color string) (*models.WorkflowStage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.New(apperr.InvalidInput, "stage name is required")
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if color == "" {
		color = models.DefaultStageColor
	}
	stage := &models.WorkflowStage{
		Name:  name,
		Order: count + 1,
		Color: color,
	}
	if err := s.repo.Store(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

func (s *stageService) Update(ctx context.Context, id int64, name, color *string) (*models.WorkflowStage, error) {
	stage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, apperr.New(apperr.NotFound, "stage not found")
	}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, apperr.New(apperr.InvalidInput, "stage name cannot be empty")
		}
		stage.Name = *name
	}
	if color != nil {
		stage.Color = *color
	}
	if err := s.repo.Update(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

func (s *stageService) Delete(ctx context.Context, id int64) error {
	stage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if stage == nil {
		return apperr.New(apperr.NotFound, "stage not found")
	}

	count, err := s.tasks.CountByStage(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.Conflict, "cannot delete a stage that has assigned tasks")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// recompact to a dense 1..N sequence, stable relative order
	remaining, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	for i, st := range remaining {
		if st.Order != i+1 {
			if err := s.repo.SetOrder(ctx, st.ID, i+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *stageService) Reorder(ctx context.Context, orderedIDs []int64) ([]models.WorkflowStage, error) {
	if len(orderedIDs) == 0 {
		return nil, apperr.New(apperr.InvalidInput, "orderedIds array required")
	}

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(existing))
	for _, st := range existing {
		known[st.ID] = true
	}

	// validate everything before applying anything
	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return nil, apperr.New(apperr.InvalidInput, "unknown stage id in orderedIds")
		}
		if seen[id] {
			return nil, apperr.New(apperr.InvalidInput, "duplicate stage id in orderedIds")
		}
		seen[id] = true
	}
	if len(orderedIDs) != len(existing) {
		return nil, apperr.New(apperr.InvalidInput, "orderedIds must include every stage exactly once")
	}

	for pos, id := range orderedIDs {
		if err := s.repo.SetOrder(ctx, id, pos+1); err != nil {
			return nil, err
		}
	}
	return s.repo.FindAll(ctx)
}

func (s *stageService) List(ctx context.Context) ([]models.WorkflowStage, error) {
	return s.repo.FindAll(ctx)
}
