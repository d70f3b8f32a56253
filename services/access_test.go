package services

import (
	"testing"

	"project-management/backend/projects-service/models"

	"github.com/stretchr/testify/assert"
)

func accessFixture() []models.Project {
	return []models.Project{
		{
			ID:      "p1",
			TeamIDs: []string{"m1"},
			Tasks: []models.Task{
				{ID: "t1", AssigneeIDs: []string{"c1", "c2"}},
				{ID: "t2", AssigneeIDs: []string{"c2"}},
			},
		},
		{
			ID:      "p2",
			TeamIDs: []string{"m1", "c3"},
			Tasks:   []models.Task{{ID: "t3", AssigneeIDs: []string{"c3"}}},
		},
	}
}

func TestCanAccessProject(t *testing.T) {
	projects := accessFixture()
	manager := &models.Collaborator{ID: "m1", Role: models.RoleManager}
	assignee := &models.Collaborator{ID: "c1", Role: models.RoleContributor}
	outsider := &models.Collaborator{ID: "c9", Role: models.RoleContributor}

	assert.True(t, CanAccessProject(projects[0], manager))
	assert.True(t, CanAccessProject(projects[0], assignee), "task assignee must see the project even when not in teamIds")
	assert.False(t, CanAccessProject(projects[0], outsider))
	assert.False(t, CanAccessProject(projects[0], nil))
}

func TestVisibleProjects(t *testing.T) {
	projects := accessFixture()

	manager := &models.Collaborator{ID: "other-manager", Role: models.RoleManager}
	assert.Len(t, VisibleProjects(projects, manager), 2, "a manager sees all projects regardless of teamIds")

	contributor := &models.Collaborator{ID: "c1", Role: models.RoleContributor}
	visible := VisibleProjects(projects, contributor)
	assert.Len(t, visible, 1)
	assert.Equal(t, "p1", visible[0].ID)

	assert.Empty(t, VisibleProjects(projects, nil))
}

func TestVisibleTasks(t *testing.T) {
	project := accessFixture()[0]

	manager := &models.Collaborator{ID: "m1", Role: models.RoleManager}
	assert.Len(t, VisibleTasks(project, manager), 2)

	c1 := &models.Collaborator{ID: "c1", Role: models.RoleContributor}
	tasksForC1 := VisibleTasks(project, c1)
	assert.Len(t, tasksForC1, 1)
	assert.Equal(t, "t1", tasksForC1[0].ID)

	c2 := &models.Collaborator{ID: "c2", Role: models.RoleContributor}
	tasksForC2 := VisibleTasks(project, c2)
	assert.Len(t, tasksForC2, 2)
	assert.Equal(t, "t1", tasksForC2[0].ID)
	assert.Equal(t, "t2", tasksForC2[1].ID)

	assert.Empty(t, VisibleTasks(project, nil))
}
