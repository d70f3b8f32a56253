package services

import (
	"strings"
	"time"

	"project-management/backend/projects-service/models"

	"golang.org/x/exp/slices"
)

type ReportCollaborator struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type ReportProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReportTask struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Status      models.TaskStatus `json:"status"`
	StatusLabel string            `json:"statusLabel"`
	Project     ReportProjectRef  `json:"project"`
	StartDate   time.Time         `json:"startDate"`
	DueDate     time.Time         `json:"dueDate"`
}

type CollaboratorTaskReport struct {
	Collaborator ReportCollaborator `json:"collaborator"`
	Tasks        []ReportTask       `json:"tasks"`
}

type OverAssignmentReport struct {
	Collaborator ReportCollaborator `json:"collaborator"`
	Conflicts    []ReportTask       `json:"conflicts"`
}

type DelayedProjectReport struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	EndDate      time.Time `json:"endDate"`
	DelayDays    int       `json:"delayDays"`
	PendingTasks int       `json:"pendingTasks"`
}

// ReportService derives operational reports from the store. Reports are plain
// reads over the same domain model the store maintains.
type ReportService struct {
	store *ProjectService
}

func NewReportService(store *ProjectService) *ReportService {
	return &ReportService{store: store}
}

// CollaboratorsWithMultipleTasks lists collaborators carrying more than one
// open task across all projects, with the tasks involved.
func (s *ReportService) CollaboratorsWithMultipleTasks() []CollaboratorTaskReport {
	assignments := s.openTasksByCollaborator()

	reports := []CollaboratorTaskReport{}
	for collaboratorID, tasks := range assignments {
		if len(tasks) < 2 {
			continue
		}
		collaborator, ok := s.store.CollaboratorByID(collaboratorID)
		if !ok {
			continue
		}
		reports = append(reports, CollaboratorTaskReport{
			Collaborator: reportCollaborator(collaborator),
			Tasks:        tasks,
		})
	}
	sortByCollaborator(reports, func(r CollaboratorTaskReport) ReportCollaborator { return r.Collaborator })
	return reports
}

// OverAssignedCollaborators lists collaborators whose open tasks have
// overlapping date windows, with the conflicting tasks.
func (s *ReportService) OverAssignedCollaborators() []OverAssignmentReport {
	assignments := s.openTasksByCollaborator()

	reports := []OverAssignmentReport{}
	for collaboratorID, tasks := range assignments {
		conflicts := overlappingTasks(tasks)
		if len(conflicts) == 0 {
			continue
		}
		collaborator, ok := s.store.CollaboratorByID(collaboratorID)
		if !ok {
			continue
		}
		reports = append(reports, OverAssignmentReport{
			Collaborator: reportCollaborator(collaborator),
			Conflicts:    conflicts,
		})
	}
	sortByCollaborator(reports, func(r OverAssignmentReport) ReportCollaborator { return r.Collaborator })
	return reports
}

// DelayedProjects lists unfinished projects whose end date has passed, with
// the delay in days and the number of unfinished tasks.
func (s *ReportService) DelayedProjects(now time.Time) []DelayedProjectReport {
	reports := []DelayedProjectReport{}
	for _, project := range s.store.Projects() {
		if project.Status == models.ProjectCompleted || !project.EndDate.Before(now) {
			continue
		}
		pending := 0
		for _, task := range project.Tasks {
			if task.Status != models.StatusCompleted {
				pending++
			}
		}
		if pending == 0 {
			continue
		}
		reports = append(reports, DelayedProjectReport{
			ID:           project.ID,
			Name:         project.Name,
			EndDate:      project.EndDate,
			DelayDays:    int(now.Sub(project.EndDate).Hours() / 24),
			PendingTasks: pending,
		})
	}
	slices.SortFunc(reports, func(a, b DelayedProjectReport) int {
		return b.DelayDays - a.DelayDays
	})
	return reports
}

func (s *ReportService) openTasksByCollaborator() map[string][]ReportTask {
	assignments := map[string][]ReportTask{}
	for _, project := range s.store.Projects() {
		ref := ReportProjectRef{ID: project.ID, Name: project.Name}
		for _, task := range project.Tasks {
			if task.Status == models.StatusCompleted {
				continue
			}
			row := ReportTask{
				ID:          task.ID,
				Name:        task.Name,
				Status:      task.Status,
				StatusLabel: models.TaskStatusLabel(task.Status),
				Project:     ref,
				StartDate:   task.StartDate,
				DueDate:     task.DueDate,
			}
			for _, assigneeID := range task.AssigneeIDs {
				assignments[assigneeID] = append(assignments[assigneeID], row)
			}
		}
	}
	return assignments
}

// overlappingTasks returns the tasks that share a date window with at least
// one other task in the list, in original order.
func overlappingTasks(tasks []ReportTask) []ReportTask {
	conflicting := make([]bool, len(tasks))
	for i := range tasks {
		for j := i + 1; j < len(tasks); j++ {
			if !tasks[i].StartDate.After(tasks[j].DueDate) && !tasks[j].StartDate.After(tasks[i].DueDate) {
				conflicting[i] = true
				conflicting[j] = true
			}
		}
	}
	conflicts := []ReportTask{}
	for i, task := range tasks {
		if conflicting[i] {
			conflicts = append(conflicts, task)
		}
	}
	return conflicts
}

func reportCollaborator(collaborator models.Collaborator) ReportCollaborator {
	return ReportCollaborator{
		ID:        collaborator.ID,
		FirstName: collaborator.FirstName,
		LastName:  collaborator.LastName,
		Email:     collaborator.Email,
	}
}

func sortByCollaborator[T any](reports []T, key func(T) ReportCollaborator) {
	slices.SortFunc(reports, func(a, b T) int {
		nameA := strings.ToLower(key(a).FirstName + " " + key(a).LastName)
		nameB := strings.ToLower(key(b).FirstName + " " + key(b).LastName)
		return strings.Compare(nameA, nameB)
	})
}
