package handlers

import (
	"net/http"
	"time"

	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/services"
)

// ReportHandler serves the manager-only operational reports.
type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) CollaboratorsWithMultipleTasks(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, h.Service.CollaboratorsWithMultipleTasks())
}

func (h *ReportHandler) OverAssignedCollaborators(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, h.Service.OverAssignedCollaborators())
}

func (h *ReportHandler) DelayedProjects(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []models.Role{models.RoleManager}); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, h.Service.DelayedProjects(time.Now()))
}
