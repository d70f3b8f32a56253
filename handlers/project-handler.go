package handlers

import (
	"encoding/json"
	"net/http"

	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Budget      float64 `json:"budget"`
	Priority    string  `json:"priority"`
	ManagerID   string  `json:"managerId"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var request createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	startDate, err := parseDate(request.StartDate)
	if err != nil {
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return
	}
	endDate, err := parseDate(request.EndDate)
	if err != nil {
		http.Error(w, "Invalid end date", http.StatusBadRequest)
		return
	}

	managerID := request.ManagerID
	if managerID == "" {
		managerID = r.Header.Get("User-ID")
	}

	project, err := h.Service.CreateProject(services.CreateProjectPayload{
		Name:        request.Name,
		Description: request.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      request.Budget,
		Priority:    request.Priority,
		ManagerID:   managerID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	user := currentUser(r, h.Service)
	projects := services.VisibleProjects(h.Service.Projects(), user)
	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	project, err := h.Service.ProjectByID(mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user := currentUser(r, h.Service)
	if !services.CanAccessProject(project, user) {
		http.Error(w, "Access forbidden", http.StatusForbidden)
		return
	}

	// Contributors only get the tasks assigned to them.
	project.Tasks = services.VisibleTasks(project, user)
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	project, err := h.Service.ProjectByID(mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	user := currentUser(r, h.Service)
	if !services.CanAccessProject(project, user) {
		http.Error(w, "Access forbidden", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, services.VisibleTasks(project, user))
}

type createTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
}

func (h *ProjectHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var request createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	startDate, err := parseDate(request.StartDate)
	if err != nil {
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return
	}
	dueDate, err := parseDate(request.DueDate)
	if err != nil {
		http.Error(w, "Invalid due date", http.StatusBadRequest)
		return
	}

	task, err := h.Service.CreateTask(mux.Vars(r)["id"], services.CreateTaskPayload{
		Name:        request.Name,
		Description: request.Description,
		Priority:    request.Priority,
		StartDate:   startDate,
		DueDate:     dueDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

func (h *ProjectHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	if err := h.Service.DeleteTask(vars["id"], vars["taskId"]); err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task removed successfully"})
}

func (h *ProjectHandler) SetTaskCollaborators(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var request struct {
		CollaboratorIDs []string `json:"collaboratorIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	if err := h.Service.SetTaskCollaborators(vars["id"], vars["taskId"], request.CollaboratorIDs); err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task collaborators updated successfully"})
}

func (h *ProjectHandler) AssignResourceToTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var request struct {
		ResourceID string `json:"resourceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	assignment, err := h.Service.AssignResourceToTask(vars["id"], vars["taskId"], request.ResourceID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, assignment)
}

func (h *ProjectHandler) RemoveResourceFromTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	if err := h.Service.RemoveResourceFromTask(vars["id"], vars["taskId"], vars["assignmentId"]); err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Resource removed successfully"})
}

func (h *ProjectHandler) AddDocumentationToTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var request struct {
		DocumentNames []string `json:"documentNames"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	documents, err := h.Service.AddDocumentationToTask(vars["id"], vars["taskId"], request.DocumentNames)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, documents)
}

func (h *ProjectHandler) RemoveDocumentationFromTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	if err := h.Service.RemoveDocumentationFromTask(vars["id"], vars["taskId"], vars["documentId"]); err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Document removed successfully"})
}

type updateTaskStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdateTaskStatus is open to managers and to contributors assigned to the
// task; other contributors are rejected.
func (h *ProjectHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	user := currentUser(r, h.Service)
	if user != nil && user.Role != models.RoleManager {
		project, err := h.Service.ProjectByID(vars["id"])
		if err != nil {
			writeDomainError(w, err)
			return
		}
		taskIndex := -1
		for i, task := range project.Tasks {
			if task.ID == vars["taskId"] {
				taskIndex = i
				break
			}
		}
		if taskIndex < 0 || !project.Tasks[taskIndex].HasAssignee(user.ID) {
			http.Error(w, "Access forbidden: task is not assigned to you", http.StatusForbidden)
			return
		}
	}

	var request updateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	status := models.ParseTaskStatus(request.Status)
	if err := h.Service.UpdateTaskStatus(vars["id"], vars["taskId"], status, request.Note); err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task status updated successfully"})
}
