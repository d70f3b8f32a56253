package middleware

import (
	"net/http"
	"strings"

	"project-management/backend/projects-service/logging"
	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/utils"
)

// JWTAuthMiddleware validates the bearer token, checks the caller's role
// against the allow-list and forwards the identity in the Role and User-ID
// headers for the handlers.
func JWTAuthMiddleware(next http.Handler, allowedRoles []models.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		role := models.ParseRole(claims.Role)
		if !roleAllowed(allowedRoles, role) {
			http.Error(w, "Access forbidden", http.StatusForbidden)
			return
		}

		r.Header.Set("Role", string(role))
		r.Header.Set("User-ID", claims.UserID)
		next.ServeHTTP(w, r)
	})
}

func roleAllowed(allowed []models.Role, role models.Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
