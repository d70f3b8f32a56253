package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*mux.Router, *services.ProjectService) {
	service := services.NewProjectService(nil)
	service.SetInitialData(nil,
		[]models.Collaborator{
			{ID: "m1", FirstName: "Ana", LastName: "Petrovic", Email: "ana@example.com", Phone: "111", Role: models.RoleManager},
			{ID: "c1", FirstName: "Marko", LastName: "Jovic", Email: "marko@example.com", Phone: "222", Role: models.RoleContributor},
		},
		[]models.Resource{
			{ID: "r1", Name: "Cloud hosting", Type: "Infrastructure", Cost: 15000},
		})

	projectHandler := NewProjectHandler(service)
	collaboratorHandler := NewCollaboratorHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/projects", projectHandler.ListProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/tasks", projectHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/tasks", projectHandler.ListProjectTasks).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/status", projectHandler.UpdateTaskStatus).Methods(http.MethodPatch)
	r.HandleFunc("/collaborators", collaboratorHandler.Register).Methods(http.MethodPost)
	return r, service
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}, userID string, role models.Role) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if role != "" {
		req.Header.Set("Role", string(role))
	}
	if userID != "" {
		req.Header.Set("User-ID", userID)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func createProjectBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Platform migration",
		"description": "Move the legacy platform",
		"startDate":   "2024-01-01",
		"endDate":     "2024-06-01",
		"budget":      100000,
		"priority":    "HIGH",
		"managerId":   "m1",
	}
}

func TestCreateProjectHandler(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(t, router, http.MethodPost, "/projects", createProjectBody(), "m1", models.RoleManager)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var project models.Project
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&project))
	assert.Equal(t, models.ProjectPlanned, project.Status)
	assert.Equal(t, []string{"m1"}, project.TeamIDs)
}

func TestCreateProjectHandler_Errors(t *testing.T) {
	router, _ := newTestRouter()

	recorder := doRequest(t, router, http.MethodPost, "/projects", createProjectBody(), "c1", models.RoleContributor)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	body := createProjectBody()
	body["budget"] = -5
	recorder = doRequest(t, router, http.MethodPost, "/projects", body, "m1", models.RoleManager)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	body = createProjectBody()
	body["managerId"] = "missing"
	recorder = doRequest(t, router, http.MethodPost, "/projects", body, "m1", models.RoleManager)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(t, router, http.MethodPost, "/projects", createProjectBody(), "m1", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code, "missing role header is rejected")
}

func TestListProjectsHandler_Visibility(t *testing.T) {
	router, service := newTestRouter()

	recorder := doRequest(t, router, http.MethodPost, "/projects", createProjectBody(), "m1", models.RoleManager)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var project models.Project
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&project))

	// The contributor is not on the team yet.
	recorder = doRequest(t, router, http.MethodGet, "/projects", nil, "c1", models.RoleContributor)
	require.Equal(t, http.StatusOK, recorder.Code)
	var visible []models.Project
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&visible))
	assert.Empty(t, visible)

	task, err := service.CreateTask(project.ID, services.CreateTaskPayload{
		Name:      "Set up environments",
		StartDate: project.StartDate,
		DueDate:   project.EndDate,
	})
	require.NoError(t, err)
	require.NoError(t, service.SetTaskCollaborators(project.ID, task.ID, []string{"c1"}))

	recorder = doRequest(t, router, http.MethodGet, "/projects", nil, "c1", models.RoleContributor)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&visible))
	require.Len(t, visible, 1)
	assert.Equal(t, project.ID, visible[0].ID)

	recorder = doRequest(t, router, http.MethodGet, "/projects", nil, "m1", models.RoleManager)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&visible))
	assert.Len(t, visible, 1)
}

func TestGetProjectByIDHandler_FiltersTasksForContributors(t *testing.T) {
	router, service := newTestRouter()

	recorder := doRequest(t, router, http.MethodPost, "/projects", createProjectBody(), "m1", models.RoleManager)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var project models.Project
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&project))

	mine, err := service.CreateTask(project.ID, services.CreateTaskPayload{
		Name:      "Set up environments",
		StartDate: project.StartDate,
		DueDate:   project.EndDate,
	})
	require.NoError(t, err)
	_, err = service.CreateTask(project.ID, services.CreateTaskPayload{
		Name:      "Write migration plan",
		StartDate: project.StartDate,
		DueDate:   project.EndDate,
	})
	require.NoError(t, err)
	require.NoError(t, service.SetTaskCollaborators(project.ID, mine.ID, []string{"c1"}))

	recorder = doRequest(t, router, http.MethodGet, "/projects/"+project.ID, nil, "c1", models.RoleContributor)
	require.Equal(t, http.StatusOK, recorder.Code)
	var fetched models.Project
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&fetched))
	require.Len(t, fetched.Tasks, 1, "a contributor only sees their own tasks")
	assert.Equal(t, mine.ID, fetched.Tasks[0].ID)

	recorder = doRequest(t, router, http.MethodGet, "/projects/"+project.ID, nil, "m1", models.RoleManager)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&fetched))
	assert.Len(t, fetched.Tasks, 2)
}

func TestUpdateTaskStatusHandler(t *testing.T) {
	router, service := newTestRouter()

	recorder := doRequest(t, router, http.MethodPost, "/projects", createProjectBody(), "m1", models.RoleManager)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var project models.Project
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&project))

	task, err := service.CreateTask(project.ID, services.CreateTaskPayload{
		Name:      "Set up environments",
		StartDate: project.StartDate,
		DueDate:   project.EndDate,
	})
	require.NoError(t, err)

	statusPath := "/projects/" + project.ID + "/tasks/" + task.ID + "/status"

	// A contributor who is not assigned to the task may not touch it.
	body := map[string]string{"status": "COMPLETED", "note": "done"}
	recorder = doRequest(t, router, http.MethodPatch, statusPath, body, "c1", models.RoleContributor)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	require.NoError(t, service.SetTaskCollaborators(project.ID, task.ID, []string{"c1"}))
	recorder = doRequest(t, router, http.MethodPatch, statusPath, body, "c1", models.RoleContributor)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// An empty note is rejected before any mutation.
	body = map[string]string{"status": "PENDING", "note": "  "}
	recorder = doRequest(t, router, http.MethodPatch, statusPath, body, "m1", models.RoleManager)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	stored, err := service.ProjectByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Tasks[0].Status)
	require.Len(t, stored.Tasks[0].ProgressNotes, 1)
}

func TestRegisterCollaboratorHandler(t *testing.T) {
	router, _ := newTestRouter()

	body := map[string]string{
		"firstName": "Petar",
		"lastName":  "Nikolic",
		"email":     "Petar@Example.com",
		"phone":     "0601234567",
	}
	recorder := doRequest(t, router, http.MethodPost, "/collaborators", body, "m1", models.RoleManager)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var collaborator models.Collaborator
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&collaborator))
	assert.Equal(t, "petar@example.com", collaborator.Email)
	assert.Equal(t, models.RoleContributor, collaborator.Role)

	recorder = doRequest(t, router, http.MethodPost, "/collaborators", body, "c1", models.RoleContributor)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	body["email"] = ""
	recorder = doRequest(t, router, http.MethodPost, "/collaborators", body, "m1", models.RoleManager)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
