package services

import (
	"math"
	"time"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

func daysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	return int(math.Ceil(diff.Hours() / 24))
}

// AnalyzeTaskRisk computes a deterministic 0..100 risk score from a task
// snapshot and its recent activity. Pure function: same inputs, same result.
//
// Weights: deadline 0-40, priority 0-20, stagnation 0-20, execution 0-20
// (two independent +10 bonuses), clamped to 100.
func AnalyzeTaskRisk(task *models.Task, activities []models.Activity, now time.Time) models.RiskResult {
	score := 0

	// Deadline risk (0-40)
	var daysToDue *int
	if task.DueDate != nil {
		d := daysBetween(*task.DueDate, now)
		daysToDue = &d

		switch {
		case d < 0:
			score += 40
		case d <= 1:
			score += 35
		case d <= 3:
			score += 25
		case d <= 7:
			score += 15
		}
	}

	// Priority risk (0-20)
	switch task.Priority {
	case models.PriorityLow:
		score += 2
	case models.PriorityMedium:
		score += 6
	case models.PriorityHigh:
		score += 12
	case models.PriorityCritical:
		score += 20
	}

	// Stagnation risk (0-20); activities are ordered newest first
	lastActivityAt := task.UpdatedAt
	if len(activities) > 0 {
		lastActivityAt = activities[0].CreatedAt
	}
	daysSinceActivity := daysBetween(now, lastActivityAt)
	if daysSinceActivity >= 7 {
		score += 20
	} else if daysSinceActivity >= 3 {
		score += 12
	}

	// Execution risk (0-20)
	totalSubtasks := len(task.Subtasks)
	completedSubtasks := 0
	for _, s := range task.Subtasks {
		if s.IsDone {
			completedSubtasks++
		}
	}
	if totalSubtasks > 0 && completedSubtasks == 0 {
		score += 10
	}
	if task.Status == models.StatusTodo && daysToDue != nil && *daysToDue <= 2 {
		score += 10
	}

	if score > 100 {
		score = 100
	}

	level := models.RiskLow
	if score >= 66 {
		level = models.RiskHigh
	} else if score >= 31 {
		level = models.RiskMedium
	}

	return models.RiskResult{
		Score: score,
		Level: level,
		Signals: models.RiskSignals{
			DaysToDue:         daysToDue,
			Priority:          task.Priority,
			Status:            task.Status,
			DaysSinceActivity: daysSinceActivity,
			TotalSubtasks:     totalSubtasks,
			CompletedSubtasks: completedSubtasks,
		},
	}
}
