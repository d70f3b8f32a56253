package models

import "time"

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
)

var projectStatusLookup = map[string]ProjectStatus{
	"PLANNED":     ProjectPlanned,
	"IN_PROGRESS": ProjectInProgress,
	"COMPLETED":   ProjectCompleted,
	"ON_HOLD":     ProjectOnHold,
	"PAUSED":      ProjectOnHold,
}

// ParseProjectStatus maps a loosely formatted status description to a
// ProjectStatus. Unrecognized or empty input falls back to ProjectPlanned.
func ParseProjectStatus(description string) ProjectStatus {
	if status, ok := projectStatusLookup[normalizeDescription(description)]; ok {
		return status
	}
	return ProjectPlanned
}

// Project owns its tasks. Status, progress and usedBudget are derived from the
// task list and are never set directly by a caller.
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Status      ProjectStatus `json:"status" bson:"status"`
	Progress    int           `json:"progress" bson:"progress"`
	StartDate   time.Time     `json:"startDate" bson:"startDate"`
	EndDate     time.Time     `json:"endDate" bson:"endDate"`
	ManagerID   string        `json:"managerId" bson:"managerId"`
	TeamIDs     []string      `json:"teamIds" bson:"teamIds"`
	Budget      float64       `json:"budget" bson:"budget"`
	UsedBudget  float64       `json:"usedBudget" bson:"usedBudget"`
	Priority    PriorityLevel `json:"priority" bson:"priority"`
	Tasks       []Task        `json:"tasks" bson:"tasks"`
}

// HasTeamMember reports whether the collaborator belongs to the project team.
func (p Project) HasTeamMember(collaboratorID string) bool {
	for _, id := range p.TeamIDs {
		if id == collaboratorID {
			return true
		}
	}
	return false
}
