package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

func taskForRisk(priority models.TaskPriority, status models.TaskStatus, due *time.Time, updatedAt time.Time) *models.Task {
	return &models.Task{
		ID:        1,
		Title:     "risk subject",
		Priority:  priority,
		Status:    status,
		DueDate:   due,
		UpdatedAt: updatedAt,
	}
}

func TestAnalyzeTaskRiskDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	task := taskForRisk(models.PriorityHigh, models.StatusInProgress, &due, now.Add(-time.Hour))

	first := AnalyzeTaskRisk(task, nil, now)
	second := AnalyzeTaskRisk(task, nil, now)
	assert.Equal(t, first, second)
}

func TestAnalyzeTaskRiskNoSignals(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	task := taskForRisk(models.PriorityLow, models.StatusInProgress, nil, now.Add(-time.Hour))

	risk := AnalyzeTaskRisk(task, nil, now)
	assert.Equal(t, 2, risk.Score)
	assert.Equal(t, models.RiskLow, risk.Level)
	assert.Nil(t, risk.Signals.DaysToDue)
}

func TestAnalyzeTaskRiskDeadlineBands(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		hoursToDue float64
		wantScore  int // deadline weight + Low priority (2)
	}{
		{-48, 42},     // overdue: +40
		{20, 37},      // <= 1 day: +35
		{60, 27},      // ceil(2.5)=3 days: +25
		{24 * 6, 17},  // 6 days: +15
		{24 * 10, 2},  // beyond the window: no deadline weight
	}
	for _, tc := range cases {
		due := now.Add(time.Duration(tc.hoursToDue * float64(time.Hour)))
		task := taskForRisk(models.PriorityLow, models.StatusInProgress, &due, now.Add(-time.Hour))
		risk := AnalyzeTaskRisk(task, nil, now)
		assert.Equal(t, tc.wantScore, risk.Score, "hours to due %v", tc.hoursToDue)
	}
}

func TestAnalyzeTaskRiskLevels(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// due in 3 days + Low priority = 27, Low
	due := now.Add(60 * time.Hour)
	low := AnalyzeTaskRisk(taskForRisk(models.PriorityLow, models.StatusInProgress, &due, now.Add(-time.Hour)), nil, now)
	assert.Equal(t, 27, low.Score)
	assert.Equal(t, models.RiskLow, low.Level)

	// due in 3 days + Medium priority = 31, first Medium score
	medium := AnalyzeTaskRisk(taskForRisk(models.PriorityMedium, models.StatusInProgress, &due, now.Add(-time.Hour)), nil, now)
	assert.Equal(t, 31, medium.Score)
	assert.Equal(t, models.RiskMedium, medium.Level)

	// overdue + Critical + stale a week = 80, High
	overdue := now.Add(-48 * time.Hour)
	high := AnalyzeTaskRisk(taskForRisk(models.PriorityCritical, models.StatusInProgress, &overdue, now.Add(-8*24*time.Hour)), nil, now)
	assert.Equal(t, 80, high.Score)
	assert.Equal(t, models.RiskHigh, high.Level)
}

func TestAnalyzeTaskRiskMaximum(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	overdue := now.Add(-72 * time.Hour)
	task := taskForRisk(models.PriorityCritical, models.StatusTodo, &overdue, now.Add(-10*24*time.Hour))
	task.Subtasks = []models.Subtask{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}

	// 40 deadline + 20 priority + 20 stagnation + 10 untouched subtasks +
	// 10 still-todo near deadline
	risk := AnalyzeTaskRisk(task, nil, now)
	assert.Equal(t, 100, risk.Score)
	assert.Equal(t, models.RiskHigh, risk.Level)
	assert.Equal(t, 2, risk.Signals.TotalSubtasks)
	assert.Equal(t, 0, risk.Signals.CompletedSubtasks)
}

func TestAnalyzeTaskRiskStagnationUsesNewestActivity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	task := taskForRisk(models.PriorityLow, models.StatusInProgress, nil, now.Add(-9*24*time.Hour))

	// the task row is stale but a recent activity resets the clock
	taskID := int64(1)
	activities := []models.Activity{
		{ID: 2, TaskID: &taskID, CreatedAt: now.Add(-time.Hour)},
		{ID: 1, TaskID: &taskID, CreatedAt: now.Add(-9 * 24 * time.Hour)},
	}
	withActivity := AnalyzeTaskRisk(task, activities, now)
	assert.Equal(t, 2, withActivity.Score)

	withoutActivity := AnalyzeTaskRisk(task, nil, now)
	assert.Equal(t, 22, withoutActivity.Score) // +20 stagnation
}

func TestAnalyzeTaskRiskSignalsEcho(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(36 * time.Hour)
	task := taskForRisk(models.PriorityHigh, models.StatusTodo, &due, now.Add(-time.Hour))
	task.Subtasks = []models.Subtask{{ID: 1, IsDone: true}, {ID: 2}}

	risk := AnalyzeTaskRisk(task, nil, now)
	require.NotNil(t, risk.Signals.DaysToDue)
	assert.Equal(t, 2, *risk.Signals.DaysToDue) // ceil(36h / 24h)
	assert.Equal(t, models.PriorityHigh, risk.Signals.Priority)
	assert.Equal(t, models.StatusTodo, risk.Signals.Status)
	assert.Equal(t, 2, risk.Signals.TotalSubtasks)
	assert.Equal(t, 1, risk.Signals.CompletedSubtasks)
}
