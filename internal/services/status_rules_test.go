package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		stageName string
		want      models.TaskStatus
	}{
		{"Completed", models.StatusCompleted},
		{"complete", models.StatusCompleted},
		{"In Progress", models.StatusInProgress},
		{"PROGRESS", models.StatusInProgress},
		{"Todo", models.StatusTodo},
		{"todo next", models.StatusTodo},
		{"Backlog", models.StatusBacklog},
		{"QA Review", models.StatusBacklog},
		{"", models.StatusBacklog},
		// "complete" wins over "progress" when both appear
		{"Progress Complete", models.StatusCompleted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveStatus(tc.stageName), "stage %q", tc.stageName)
	}
}
