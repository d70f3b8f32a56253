package services

import (
	"testing"
	"time"

	"project-management/backend/projects-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() *ReportService {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	store := NewProjectService(nil)
	store.SetInitialData(
		[]models.Project{
			{
				ID: "p1", Name: "Migration", Status: models.ProjectInProgress,
				EndDate: day(10),
				Tasks: []models.Task{
					{ID: "t1", Name: "Backend", Status: models.StatusInProgress, AssigneeIDs: []string{"c1"}, StartDate: day(1), DueDate: day(5)},
					{ID: "t2", Name: "Frontend", Status: models.StatusPending, AssigneeIDs: []string{"c1"}, StartDate: day(4), DueDate: day(8)},
					{ID: "t3", Name: "Docs", Status: models.StatusCompleted, AssigneeIDs: []string{"c2"}, StartDate: day(1), DueDate: day(2)},
				},
			},
			{
				ID: "p2", Name: "Rollout", Status: models.ProjectInProgress,
				EndDate: day(30),
				Tasks: []models.Task{
					{ID: "t4", Name: "Training", Status: models.StatusPending, AssigneeIDs: []string{"c2"}, StartDate: day(20), DueDate: day(25)},
				},
			},
		},
		[]models.Collaborator{
			{ID: "c1", FirstName: "Marko", LastName: "Jovic", Email: "marko@example.com", Role: models.RoleContributor},
			{ID: "c2", FirstName: "Ivana", LastName: "Savic", Email: "ivana@example.com", Role: models.RoleContributor},
		},
		nil)
	return NewReportService(store)
}

func TestCollaboratorsWithMultipleTasks(t *testing.T) {
	reports := reportFixture().CollaboratorsWithMultipleTasks()

	require.Len(t, reports, 1, "completed tasks do not count as load")
	assert.Equal(t, "c1", reports[0].Collaborator.ID)
	assert.Len(t, reports[0].Tasks, 2)
	assert.Equal(t, "In progress", reports[0].Tasks[0].StatusLabel)
}

func TestOverAssignedCollaborators(t *testing.T) {
	reports := reportFixture().OverAssignedCollaborators()

	// c1's two open tasks overlap between March 4 and March 5; c2's open task
	// has no competitor.
	require.Len(t, reports, 1)
	assert.Equal(t, "c1", reports[0].Collaborator.ID)
	require.Len(t, reports[0].Conflicts, 2)
	assert.Equal(t, "t1", reports[0].Conflicts[0].ID)
	assert.Equal(t, "t2", reports[0].Conflicts[1].ID)
}

func TestDelayedProjects(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	reports := reportFixture().DelayedProjects(now)

	require.Len(t, reports, 1, "only projects past their end date are delayed")
	assert.Equal(t, "p1", reports[0].ID)
	assert.Equal(t, 5, reports[0].DelayDays)
	assert.Equal(t, 2, reports[0].PendingTasks)
}
