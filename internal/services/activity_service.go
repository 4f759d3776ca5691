package services

import (
	"context"
	"log"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/realtime"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

const DefaultFeedLimit = 40

type ActivityService interface {
	// Append stores an entry and broadcasts the enriched record on the
	// global "activity" channel. Returns the enriched entry.
	Append(ctx context.Context, action string, actorID int64, taskID *int64, details string) (*models.Activity, error)
	// Log is the fire-and-forget form used after a successful mutation:
	// failures are logged, never propagated.
	Log(ctx context.Context, action string, actorID int64, taskID *int64, details string)
	Recent(ctx context.Context, taskID int64, limit int) ([]models.Activity, error)
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

type activityService struct {
	repo repositories.ActivityRepository
	hub  realtime.Publisher
}

func NewActivityService(repo repositories.ActivityRepository, hub realtime.Publisher) ActivityService {
	return &activityService{repo: repo, hub: hub}
}

func (s *activityService) Append(ctx context.Context, action string, actorID int64, taskID *int64, details string) (*models.Activity, error) {
	a := &models.Activity{
		Action:  action,
		ActorID: actorID,
		TaskID:  taskID,
		Details: details,
	}
	if err := s.repo.Store(ctx, a); err != nil {
		return nil, err
	}

	enriched, err := s.repo.FindByIDEnriched(ctx, a.ID)
	if err != nil || enriched == nil {
		// the entry is stored; broadcast the bare record instead
		s.hub.Broadcast("activity", a)
		return a, nil
	}

	s.hub.Broadcast("activity", enriched)
	return enriched, nil
}

func (s *activityService) Log(ctx context.Context, action string, actorID int64, taskID *int64, details string) {
	if _, err := s.Append(ctx, action, actorID, taskID, details); err != nil {
		log.Printf("[activity][err] action=%s actor=%d: %v", action, actorID, err)
	}
}

func (s *activityService) Recent(ctx context.Context, taskID int64, limit int) ([]models.Activity, error) {
	return s.repo.FindByTask(ctx, taskID, limit)
}

func (s *activityService) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.repo.FindRecent(ctx, limit)
}
