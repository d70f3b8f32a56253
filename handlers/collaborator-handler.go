package handlers

import (
	"encoding/json"
	"net/http"

	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/services"
)

type CollaboratorHandler struct {
	Service *services.ProjectService
}

func NewCollaboratorHandler(service *services.ProjectService) *CollaboratorHandler {
	return &CollaboratorHandler{Service: service}
}

// Register creates a contributor account. Only managers may register
// collaborators, and the created account is always a contributor.
func (h *CollaboratorHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var payload services.RegisterCollaboratorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	collaborator, err := h.Service.RegisterCollaborator(payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, collaborator)
}

func (h *CollaboratorHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, h.Service.Collaborators())
}
