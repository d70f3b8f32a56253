package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/services"
)

func checkRole(r *http.Request, allowedRoles []models.Role) error {
	userRole := r.Header.Get("Role")
	if userRole == "" {
		return fmt.Errorf("role is missing in request header")
	}

	for _, role := range allowedRoles {
		if role == models.Role(userRole) {
			return nil
		}
	}
	return fmt.Errorf("access forbidden: user does not have the required role")
}

// currentUser resolves the authenticated caller from the headers set by the
// auth middleware. Falls back to the bare token identity when the registry
// does not hold the user.
func currentUser(r *http.Request, service *services.ProjectService) *models.Collaborator {
	userID := r.Header.Get("User-ID")
	if userID == "" {
		return nil
	}
	collaborator, ok := service.CollaboratorByID(userID)
	if !ok {
		return &models.Collaborator{ID: userID, Role: models.ParseRole(r.Header.Get("Role"))}
	}
	return &collaborator
}

// writeDomainError maps the store's error taxonomy to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}
	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		http.Error(w, notFoundErr.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// parseDate accepts plain dates and full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
