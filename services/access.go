package services

import "project-management/backend/projects-service/models"

// CanAccessProject reports whether the user may see the project. Managers see
// everything; contributors must be on the team or assigned to one of the
// project's tasks. A nil user never has access.
func CanAccessProject(project models.Project, user *models.Collaborator) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleManager {
		return true
	}
	if project.HasTeamMember(user.ID) {
		return true
	}
	for _, task := range project.Tasks {
		if task.HasAssignee(user.ID) {
			return true
		}
	}
	return false
}

// VisibleProjects returns the projects the user may see, preserving order.
func VisibleProjects(projects []models.Project, user *models.Collaborator) []models.Project {
	if user == nil {
		return []models.Project{}
	}
	if user.Role == models.RoleManager {
		return projects
	}
	visible := []models.Project{}
	for _, project := range projects {
		if CanAccessProject(project, user) {
			visible = append(visible, project)
		}
	}
	return visible
}

// VisibleTasks returns the project's tasks the user may see, preserving order.
// Contributors only see tasks they are assigned to.
func VisibleTasks(project models.Project, user *models.Collaborator) []models.Task {
	if user == nil {
		return []models.Task{}
	}
	if user.Role == models.RoleManager {
		return project.Tasks
	}
	visible := []models.Task{}
	for _, task := range project.Tasks {
		if task.HasAssignee(user.ID) {
			visible = append(visible, task)
		}
	}
	return visible
}
