package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"project-management/backend/projects-service/logging"
	"project-management/backend/projects-service/models"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Persistence is the write-through backend for the store. Every mutation
// replaces the affected document wholesale; the last write wins.
type Persistence interface {
	SaveProject(ctx context.Context, project models.Project) error
	SaveCollaborator(ctx context.Context, collaborator models.Collaborator) error
}

type CreateProjectPayload struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Budget      float64   `json:"budget"`
	Priority    string    `json:"priority"`
	ManagerID   string    `json:"managerId"`
}

type CreateTaskPayload struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	StartDate   time.Time `json:"startDate"`
	DueDate     time.Time `json:"dueDate"`
}

type RegisterCollaboratorPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ProjectService is the mutable store for projects, the collaborator registry
// and the resource catalog. All mutations funnel through its operations so the
// metric derivation can never be bypassed.
type ProjectService struct {
	mu            sync.RWMutex
	projects      []models.Project
	collaborators []models.Collaborator
	resources     []models.Resource
	persistence   Persistence
}

// NewProjectService creates a store. persistence may be nil for a purely
// in-memory store.
func NewProjectService(persistence Persistence) *ProjectService {
	return &ProjectService{persistence: persistence}
}

// SetInitialData replaces the store contents with a bulk load. Derived fields
// of loaded projects are recomputed rather than trusted.
func (s *ProjectService) SetInitialData(projects []models.Project, collaborators []models.Collaborator, resources []models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = make([]models.Project, 0, len(projects))
	for _, project := range projects {
		s.projects = append(s.projects, RecalculateProject(project))
	}
	s.collaborators = append([]models.Collaborator{}, collaborators...)
	s.resources = append([]models.Resource{}, resources...)

	logging.Logger.Infof("Event ID: STORE_LOADED, Description: Store loaded with %d projects, %d collaborators, %d resources",
		len(s.projects), len(s.collaborators), len(s.resources))
}

// CreateProject validates the payload, creates a planned project owned by the
// given manager and appends it to the collection.
func (s *ProjectService) CreateProject(payload CreateProjectPayload) (models.Project, error) {
	name := strings.TrimSpace(payload.Name)
	description := strings.TrimSpace(payload.Description)

	if name == "" {
		return models.Project{}, models.NewValidationError("name", "project name is required")
	}
	if description == "" {
		return models.Project{}, models.NewValidationError("description", "project description is required")
	}
	if payload.StartDate.IsZero() || payload.EndDate.IsZero() {
		return models.Project{}, models.NewValidationError("startDate", "start and end dates are required")
	}
	if payload.StartDate.After(payload.EndDate) {
		return models.Project{}, models.NewValidationError("endDate", "end date must not precede start date")
	}
	if math.IsNaN(payload.Budget) || math.IsInf(payload.Budget, 0) || payload.Budget <= 0 {
		return models.Project{}, models.NewValidationError("budget", "budget must be a positive amount")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	manager, ok := s.findCollaborator(payload.ManagerID)
	if !ok || manager.Role != models.RoleManager {
		return models.Project{}, models.NewNotFoundError("manager", payload.ManagerID)
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      models.ProjectPlanned,
		Progress:    0,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		ManagerID:   manager.ID,
		TeamIDs:     []string{manager.ID},
		Budget:      payload.Budget,
		UsedBudget:  0,
		Priority:    models.ParsePriority(payload.Priority),
		Tasks:       []models.Task{},
	}
	project = RecalculateProject(project)

	s.projects = append(s.projects, project)
	s.persistProject(project)

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by manager %s", project.ID, manager.ID)
	return project, nil
}

// CreateTask validates the payload and appends a pending task to the project.
func (s *ProjectService) CreateTask(projectID string, payload CreateTaskPayload) (models.Task, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return models.Task{}, models.NewValidationError("name", "task name is required")
	}
	if payload.StartDate.IsZero() || payload.DueDate.IsZero() {
		return models.Task{}, models.NewValidationError("startDate", "start and due dates are required")
	}
	if payload.StartDate.After(payload.DueDate) {
		return models.Task{}, models.NewValidationError("dueDate", "due date must not precede start date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.Task{}, models.NewNotFoundError("project", projectID)
	}

	task := models.Task{
		ID:            uuid.NewString(),
		Name:          name,
		Priority:      models.ParsePriority(payload.Priority),
		StartDate:     payload.StartDate,
		DueDate:       payload.DueDate,
		Status:        models.StatusPending,
		Description:   strings.TrimSpace(payload.Description),
		AssigneeIDs:   []string{},
		Documentation: []models.TaskDocument{},
		Resources:     []models.ResourceAssignment{},
		ProgressNotes: []models.ProgressNote{},
		CreatedAt:     time.Now(),
	}

	s.projects[index].Tasks = append(s.projects[index].Tasks, task)
	s.projects[index] = RecalculateProject(s.projects[index])
	s.persistProject(s.projects[index])

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created in project %s", task.ID, projectID)
	return task, nil
}

// DeleteTask removes the task from the project. A task that is already absent
// is a tolerant no-op, not an error.
func (s *ProjectService) DeleteTask(projectID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.NewNotFoundError("project", projectID)
	}

	tasks := s.projects[index].Tasks
	taskIndex := findTask(tasks, taskID)
	if taskIndex < 0 {
		return nil
	}

	s.projects[index].Tasks = append(tasks[:taskIndex], tasks[taskIndex+1:]...)
	s.projects[index] = RecalculateProject(s.projects[index])
	s.persistProject(s.projects[index])

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s removed from project %s", taskID, projectID)
	return nil
}

// SetTaskCollaborators replaces the task's assignees wholesale and unions the
// ids into the project team. The team only grows, it never shrinks here.
func (s *ProjectService) SetTaskCollaborators(projectID, taskID string, collaboratorIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.NewNotFoundError("project", projectID)
	}
	taskIndex := findTask(s.projects[index].Tasks, taskID)
	if taskIndex < 0 {
		return models.NewNotFoundError("task", taskID)
	}

	deduped := dedupeIDs(collaboratorIDs)
	s.projects[index].Tasks[taskIndex].AssigneeIDs = deduped
	for _, id := range deduped {
		if !s.projects[index].HasTeamMember(id) {
			s.projects[index].TeamIDs = append(s.projects[index].TeamIDs, id)
		}
	}

	s.projects[index] = RecalculateProject(s.projects[index])
	s.persistProject(s.projects[index])

	logging.Logger.Infof("Event ID: TASK_ASSIGNEES_SET, Description: Task %s in project %s now has %d assignees", taskID, projectID, len(deduped))
	return nil
}

// AssignResourceToTask snapshots the catalog resource's name and cost into a
// new assignment on the task.
func (s *ProjectService) AssignResourceToTask(projectID, taskID, resourceID string) (models.ResourceAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.ResourceAssignment{}, models.NewNotFoundError("project", projectID)
	}
	taskIndex := findTask(s.projects[index].Tasks, taskID)
	if taskIndex < 0 {
		return models.ResourceAssignment{}, models.NewNotFoundError("task", taskID)
	}
	resource, ok := s.findResource(resourceID)
	if !ok {
		return models.ResourceAssignment{}, models.NewNotFoundError("resource", resourceID)
	}

	assignment := models.ResourceAssignment{
		ID:         uuid.NewString(),
		ResourceID: resource.ID,
		Name:       resource.Name,
		Cost:       resource.Cost,
		AssignedAt: time.Now(),
	}

	task := &s.projects[index].Tasks[taskIndex]
	task.Resources = append(task.Resources, assignment)
	s.projects[index] = RecalculateProject(s.projects[index])
	s.persistProject(s.projects[index])

	logging.Logger.Infof("Event ID: RESOURCE_ASSIGNED, Description: Resource %s assigned to task %s in project %s", resourceID, taskID, projectID)
	return assignment, nil
}

// RemoveResourceFromTask removes the matching assignment. An assignment that
// is already absent is a tolerant no-op.
func (s *ProjectService) RemoveResourceFromTask(projectID, taskID, assignmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.NewNotFoundError("project", projectID)
	}
	taskIndex := findTask(s.projects[index].Tasks, taskID)
	if taskIndex < 0 {
		return models.NewNotFoundError("task", taskID)
	}

	task := &s.projects[index].Tasks[taskIndex]
	for i, assignment := range task.Resources {
		if assignment.ID == assignmentID {
			task.Resources = append(task.Resources[:i], task.Resources[i+1:]...)
			s.projects[index] = RecalculateProject(s.projects[index])
			s.persistProject(s.projects[index])
			logging.Logger.Infof("Event ID: RESOURCE_REMOVED, Description: Assignment %s removed from task %s in project %s", assignmentID, taskID, projectID)
			return nil
		}
	}
	return nil
}

// AddDocumentationToTask attaches one document per name with the current
// timestamp. Documentation does not affect the derived metrics.
func (s *ProjectService) AddDocumentationToTask(projectID, taskID string, documentNames []string) ([]models.TaskDocument, error) {
	trimmed := make([]string, 0, len(documentNames))
	for _, name := range documentNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, models.NewValidationError("documentNames", "document names must not be empty")
		}
		trimmed = append(trimmed, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return nil, models.NewNotFoundError("project", projectID)
	}
	taskIndex := findTask(s.projects[index].Tasks, taskID)
	if taskIndex < 0 {
		return nil, models.NewNotFoundError("task", taskID)
	}

	documents := make([]models.TaskDocument, 0, len(trimmed))
	now := time.Now()
	for _, name := range trimmed {
		documents = append(documents, models.TaskDocument{
			ID:         uuid.NewString(),
			Name:       name,
			UploadedAt: now,
		})
	}

	task := &s.projects[index].Tasks[taskIndex]
	task.Documentation = append(task.Documentation, documents...)
	s.persistProject(s.projects[index])

	logging.Logger.Infof("Event ID: DOCUMENTATION_ADDED, Description: %d documents attached to task %s in project %s", len(documents), taskID, projectID)
	return documents, nil
}

// RemoveDocumentationFromTask removes the matching document. A document that
// is already absent is a tolerant no-op.
func (s *ProjectService) RemoveDocumentationFromTask(projectID, taskID, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.NewNotFoundError("project", projectID)
	}
	taskIndex := findTask(s.projects[index].Tasks, taskID)
	if taskIndex < 0 {
		return models.NewNotFoundError("task", taskID)
	}

	task := &s.projects[index].Tasks[taskIndex]
	for i, document := range task.Documentation {
		if document.ID == documentID {
			task.Documentation = append(task.Documentation[:i], task.Documentation[i+1:]...)
			s.persistProject(s.projects[index])
			logging.Logger.Infof("Event ID: DOCUMENTATION_REMOVED, Description: Document %s removed from task %s in project %s", documentID, taskID, projectID)
			return nil
		}
	}
	return nil
}

// UpdateTaskStatus records a mandatory progress note and moves the task to the
// new status. No transition ordering is enforced; any status is reachable from
// any other.
func (s *ProjectService) UpdateTaskStatus(projectID, taskID string, status models.TaskStatus, note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return models.NewValidationError("note", "a progress note is required when changing status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.NewNotFoundError("project", projectID)
	}
	taskIndex := findTask(s.projects[index].Tasks, taskID)
	if taskIndex < 0 {
		return models.NewNotFoundError("task", taskID)
	}

	task := &s.projects[index].Tasks[taskIndex]
	task.ProgressNotes = append(task.ProgressNotes, models.ProgressNote{
		ID:        uuid.NewString(),
		Message:   note,
		CreatedAt: time.Now(),
	})
	task.Status = status

	s.projects[index] = RecalculateProject(s.projects[index])
	s.persistProject(s.projects[index])

	logging.Logger.Infof("Event ID: TASK_STATUS_UPDATED, Description: Task %s in project %s moved to %s", taskID, projectID, status)
	return nil
}

// RegisterCollaborator validates and adds a contributor account to the
// registry. The role is always contributor; manager accounts are provisioned
// outside the application.
func (s *ProjectService) RegisterCollaborator(payload RegisterCollaboratorPayload) (models.Collaborator, error) {
	firstName := strings.TrimSpace(payload.FirstName)
	lastName := strings.TrimSpace(payload.LastName)
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	phone := strings.TrimSpace(payload.Phone)

	if firstName == "" {
		return models.Collaborator{}, models.NewValidationError("firstName", "first name is required")
	}
	if lastName == "" {
		return models.Collaborator{}, models.NewValidationError("lastName", "last name is required")
	}
	if email == "" {
		return models.Collaborator{}, models.NewValidationError("email", "email is required")
	}
	if phone == "" {
		return models.Collaborator{}, models.NewValidationError("phone", "phone is required")
	}

	collaborator := models.Collaborator{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Role:      models.RoleContributor,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collaborators = append(s.collaborators, collaborator)
	if s.persistence != nil {
		if err := s.persistence.SaveCollaborator(context.Background(), collaborator); err != nil {
			logging.Logger.Errorf("Event ID: COLLABORATOR_PERSIST_FAILED, Description: Failed to persist collaborator %s: %v", collaborator.ID, err)
		}
	}

	logging.Logger.Infof("Event ID: COLLABORATOR_REGISTERED, Description: Collaborator %s registered", collaborator.ID)
	return collaborator, nil
}

// Projects returns a copy of the project collection in insertion order.
func (s *ProjectService) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project{}, s.projects...)
}

// ProjectByID returns the project with the given id.
func (s *ProjectService) ProjectByID(projectID string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.findProject(projectID)
	if index < 0 {
		return models.Project{}, models.NewNotFoundError("project", projectID)
	}
	return s.projects[index], nil
}

// Collaborators returns the registry sorted by full name.
func (s *ProjectService) Collaborators() []models.Collaborator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	collaborators := append([]models.Collaborator{}, s.collaborators...)
	slices.SortFunc(collaborators, func(a, b models.Collaborator) int {
		return strings.Compare(strings.ToLower(a.FullName()), strings.ToLower(b.FullName()))
	})
	return collaborators
}

// CollaboratorByID looks up a collaborator in the registry.
func (s *ProjectService) CollaboratorByID(collaboratorID string) (models.Collaborator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findCollaborator(collaboratorID)
}

// Resources returns the read-only resource catalog.
func (s *ProjectService) Resources() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Resource{}, s.resources...)
}

func (s *ProjectService) persistProject(project models.Project) {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.SaveProject(context.Background(), project); err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_PERSIST_FAILED, Description: Failed to persist project %s: %v", project.ID, err)
	}
}

func (s *ProjectService) findProject(projectID string) int {
	for i, project := range s.projects {
		if project.ID == projectID {
			return i
		}
	}
	return -1
}

func (s *ProjectService) findCollaborator(collaboratorID string) (models.Collaborator, bool) {
	for _, collaborator := range s.collaborators {
		if collaborator.ID == collaboratorID {
			return collaborator, true
		}
	}
	return models.Collaborator{}, false
}

func (s *ProjectService) findResource(resourceID string) (models.Resource, bool) {
	for _, resource := range s.resources {
		if resource.ID == resourceID {
			return resource, true
		}
	}
	return models.Resource{}, false
}

func findTask(tasks []models.Task, taskID string) int {
	for i, task := range tasks {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}
