package services

import (
	"context"
	"time"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
)

type StageSummary struct {
	Stage     models.WorkflowStage `json:"stage"`
	TaskCount int                  `json:"task_count"`
}

type BoardSummary struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Stages      []StageSummary `json:"stages"`
	TotalTasks  int            `json:"total_tasks"`
	Overdue     int            `json:"overdue"`
}

type ReportService struct {
	stages repositories.StageRepository
	tasks  repositories.TaskRepository
}

func NewReportService(stages repositories.StageRepository, tasks repositories.TaskRepository) *ReportService {
	return &ReportService{stages: stages, tasks: tasks}
}

func (s *ReportService) BoardSummary(ctx context.Context) (*BoardSummary, error) {
	stages, err := s.stages.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &BoardSummary{GeneratedAt: time.Now()}
	for _, stage := range stages {
		count, err := s.tasks.CountByStage(ctx, stage.ID)
		if err != nil {
			return nil, err
		}
		summary.Stages = append(summary.Stages, StageSummary{Stage: stage, TaskCount: count})
		summary.TotalTasks += count
	}

	overdue, err := s.tasks.CountOverdue(ctx)
	if err != nil {
		return nil, err
	}
	summary.Overdue = overdue
	return summary, nil
}
