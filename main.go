package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"project-management/backend/projects-service/handlers"
	"project-management/backend/projects-service/logging"
	"project-management/backend/projects-service/middleware"
	"project-management/backend/projects-service/models"
	"project-management/backend/projects-service/repositories"
	"project-management/backend/projects-service/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Projects Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	storageBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ProjectsStorageCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	repository := repositories.NewProjectRepository(client.Database(mongoDBName), storageBreaker)
	projectService := services.NewProjectService(repository)

	initial := repository.LoadInitial(ctx)
	projectService.SetInitialData(initial.Projects, initial.Collaborators, initial.Resources)
	for _, collection := range initial.Failures {
		logging.Logger.Warnf("Event ID: INITIAL_LOAD_PARTIAL, Description: Collection %s failed to load; store starts without it", collection)
	}

	reportService := services.NewReportService(projectService)

	projectHandler := handlers.NewProjectHandler(projectService)
	collaboratorHandler := handlers.NewCollaboratorHandler(projectService)
	catalogHandler := handlers.NewCatalogHandler(projectService)
	reportHandler := handlers.NewReportHandler(reportService)

	r := mux.NewRouter()
	r.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/projects", projectHandler.ListProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/tasks", projectHandler.ListProjectTasks).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/tasks", projectHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/tasks/{taskId}", projectHandler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/collaborators", projectHandler.SetTaskCollaborators).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/resources", projectHandler.AssignResourceToTask).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/resources/{assignmentId}", projectHandler.RemoveResourceFromTask).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/documents", projectHandler.AddDocumentationToTask).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/documents/{documentId}", projectHandler.RemoveDocumentationFromTask).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/tasks/{taskId}/status", projectHandler.UpdateTaskStatus).Methods(http.MethodPatch)
	r.HandleFunc("/collaborators", collaboratorHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/collaborators", collaboratorHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/catalog/resources", catalogHandler.ListResources).Methods(http.MethodGet)
	r.HandleFunc("/catalog/priorities", catalogHandler.ListPriorities).Methods(http.MethodGet)
	r.HandleFunc("/catalog/task-states", catalogHandler.ListTaskStates).Methods(http.MethodGet)
	r.HandleFunc("/reports/collaborators/multiple-tasks", reportHandler.CollaboratorsWithMultipleTasks).Methods(http.MethodGet)
	r.HandleFunc("/reports/collaborators/over-assignment", reportHandler.OverAssignedCollaborators).Methods(http.MethodGet)
	r.HandleFunc("/reports/projects/delayed", reportHandler.DelayedProjects).Methods(http.MethodGet)

	protected := middleware.JWTAuthMiddleware(r, []models.Role{models.RoleManager, models.RoleContributor})
	corsRouter := enableCORS(protected)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
