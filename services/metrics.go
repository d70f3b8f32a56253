package services

import (
	"math"

	"project-management/backend/projects-service/models"
)

// RecalculateProject derives usedBudget, progress and status from the task
// list and returns the updated project value. It is pure: no I/O, no mutation
// of the input. Callers must run it after every task creation, task deletion,
// resource assignment, resource removal or status update; collaborator and
// documentation changes do not affect the derived fields.
func RecalculateProject(project models.Project) models.Project {
	usedBudget := 0.0
	completed := 0
	for _, task := range project.Tasks {
		for _, assignment := range task.Resources {
			usedBudget += assignment.Cost
		}
		if task.Status == models.StatusCompleted {
			completed++
		}
	}

	progress := 0
	if len(project.Tasks) > 0 {
		progress = int(math.Round(100 * float64(completed) / float64(len(project.Tasks))))
	}

	project.UsedBudget = usedBudget
	project.Progress = progress

	// An on-hold project is only ever moved by a human action, so the
	// derivation leaves it alone even at 100% completion.
	if project.Status != models.ProjectOnHold {
		switch {
		case progress == 100 && len(project.Tasks) > 0:
			project.Status = models.ProjectCompleted
		case len(project.Tasks) > 0 && progress > 0 && project.Status == models.ProjectPlanned:
			project.Status = models.ProjectInProgress
		}
	}

	return project
}
