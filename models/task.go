package models

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusInReview   TaskStatus = "IN_REVIEW"
	StatusCompleted  TaskStatus = "COMPLETED"
)

var taskStatusLookup = map[string]TaskStatus{
	"PENDING":     StatusPending,
	"CREATED":     StatusPending,
	"TODO":        StatusPending,
	"IN_PROGRESS": StatusInProgress,
	"IN_REVIEW":   StatusInReview,
	"REVIEW":      StatusInReview,
	"COMPLETED":   StatusCompleted,
	"DONE":        StatusCompleted,
}

var taskStatusLabels = map[TaskStatus]string{
	StatusPending:    "Pending",
	StatusInProgress: "In progress",
	StatusInReview:   "In review",
	StatusCompleted:  "Completed",
}

// AllTaskStatuses lists the task states in their usual workflow order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusInReview, StatusCompleted}
}

// ParseTaskStatus maps a loosely formatted state description to a TaskStatus.
// Unrecognized or empty input falls back to StatusPending.
func ParseTaskStatus(description string) TaskStatus {
	if status, ok := taskStatusLookup[normalizeDescription(description)]; ok {
		return status
	}
	return StatusPending
}

// TaskStatusLabel returns the human readable label for a status.
func TaskStatusLabel(status TaskStatus) string {
	if label, ok := taskStatusLabels[status]; ok {
		return label
	}
	return taskStatusLabels[StatusPending]
}

// TaskDocument is owned by its task: created on upload, destroyed on removal.
type TaskDocument struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"name" bson:"name"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// ProgressNote is an append-only log entry recorded on every status change.
type ProgressNote struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Task struct {
	ID            string               `json:"id" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	Priority      PriorityLevel        `json:"priority" bson:"priority"`
	StartDate     time.Time            `json:"startDate" bson:"startDate"`
	DueDate       time.Time            `json:"dueDate" bson:"dueDate"`
	Status        TaskStatus           `json:"status" bson:"status"`
	Description   string               `json:"description" bson:"description"`
	AssigneeIDs   []string             `json:"assigneeIds" bson:"assigneeIds"`
	Documentation []TaskDocument       `json:"documentation" bson:"documentation"`
	Resources     []ResourceAssignment `json:"resources" bson:"resources"`
	ProgressNotes []ProgressNote       `json:"progressNotes" bson:"progressNotes"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
}

// HasAssignee reports whether the collaborator is assigned to the task.
func (t Task) HasAssignee(collaboratorID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == collaboratorID {
			return true
		}
	}
	return false
}
