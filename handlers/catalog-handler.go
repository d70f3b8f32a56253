package handlers

import (
	"net/http"

	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/services"
)

// CatalogHandler serves the read-only catalogs the client needs to render
// forms: resources, priority levels and task states.
type CatalogHandler struct {
	Service *services.ProjectService
}

func NewCatalogHandler(service *services.ProjectService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

func (h *CatalogHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, h.Service.Resources())
}

func (h *CatalogHandler) ListPriorities(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, models.AllPriorities())
}

func (h *CatalogHandler) ListTaskStates(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager, models.RoleContributor}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	states := []map[string]string{}
	for _, status := range models.AllTaskStatuses() {
		states = append(states, map[string]string{
			"id":          string(status),
			"description": models.TaskStatusLabel(status),
		})
	}
	respondJSON(w, http.StatusOK, states)
}
