package repositories

import (
	"context"
	"fmt"
	"sync"

	"project-management/backend/projects-service/logging"
	"project-management/backend/projects-service/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepository persists the store's documents in MongoDB. Writes replace
// the whole document (last write wins); there is no optimistic concurrency
// token. All calls go through a circuit breaker.
type ProjectRepository struct {
	projects      *mongo.Collection
	collaborators *mongo.Collection
	resources     *mongo.Collection
	breaker       *gobreaker.CircuitBreaker
}

func NewProjectRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *ProjectRepository {
	return &ProjectRepository{
		projects:      db.Collection("projects"),
		collaborators: db.Collection("collaborators"),
		resources:     db.Collection("resources"),
		breaker:       breaker,
	}
}

// SaveProject upserts the project document wholesale.
func (r *ProjectRepository) SaveProject(ctx context.Context, project models.Project) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		opts := options.Replace().SetUpsert(true)
		return r.projects.ReplaceOne(ctx, bson.M{"_id": project.ID}, project, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to save project %s: %v", project.ID, err)
	}
	return nil
}

// SaveCollaborator upserts the collaborator document.
func (r *ProjectRepository) SaveCollaborator(ctx context.Context, collaborator models.Collaborator) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		opts := options.Replace().SetUpsert(true)
		return r.collaborators.ReplaceOne(ctx, bson.M{"_id": collaborator.ID}, collaborator, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to save collaborator %s: %v", collaborator.ID, err)
	}
	return nil
}

// InitialData is the result of the bulk load at startup. Failures holds the
// collections that could not be loaded; a partial failure never blocks the
// other collections from populating the store.
type InitialData struct {
	Projects      []models.Project
	Collaborators []models.Collaborator
	Resources     []models.Resource
	Failures      []string
}

// LoadInitial reads the three collections as independently failing parallel
// requests.
func (r *ProjectRepository) LoadInitial(ctx context.Context) InitialData {
	var data InitialData
	var mu sync.Mutex
	var wg sync.WaitGroup

	recordFailure := func(collection string, err error) {
		mu.Lock()
		defer mu.Unlock()
		data.Failures = append(data.Failures, collection)
		logging.Logger.Errorf("Event ID: INITIAL_LOAD_FAILED, Description: Failed to load %s: %v", collection, err)
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		projects, err := loadCollection[models.Project](ctx, r.breaker, r.projects)
		if err != nil {
			recordFailure("projects", err)
			return
		}
		mu.Lock()
		data.Projects = projects
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		collaborators, err := loadCollection[models.Collaborator](ctx, r.breaker, r.collaborators)
		if err != nil {
			recordFailure("collaborators", err)
			return
		}
		mu.Lock()
		data.Collaborators = collaborators
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		resources, err := loadCollection[models.Resource](ctx, r.breaker, r.resources)
		if err != nil {
			recordFailure("resources", err)
			return
		}
		mu.Lock()
		data.Resources = resources
		mu.Unlock()
	}()
	wg.Wait()

	return data
}

func loadCollection[T any](ctx context.Context, breaker *gobreaker.CircuitBreaker, collection *mongo.Collection) ([]T, error) {
	result, err := breaker.Execute(func() (interface{}, error) {
		cursor, err := collection.Find(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var documents []T
		if err := cursor.All(ctx, &documents); err != nil {
			return nil, err
		}
		return documents, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}
