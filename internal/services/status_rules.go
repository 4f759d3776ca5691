package services

import (
	"strings"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

// DeriveStatus maps a stage name to the task status it implies. Checked in
// priority order: a name containing both "complete" and "progress" resolves
// to completed. Evaluated fresh on every stage change; renaming a stage does
// not retroactively reclassify tasks already in it.
func DeriveStatus(stageName string) models.TaskStatus {
	name := strings.ToLower(stageName)
	switch {
	case strings.Contains(name, "complete"):
		return models.StatusCompleted
	case strings.Contains(name, "progress"):
		return models.StatusInProgress
	case strings.Contains(name, "todo"):
		return models.StatusTodo
	default:
		return models.StatusBacklog
	}
}
