package models

import "time"

// Resource is a read-only catalog entry. The application references resources
// by id and never mutates them.
type Resource struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Type        string  `json:"type" bson:"type"`
	Cost        float64 `json:"cost" bson:"cost"`
	Description string  `json:"description" bson:"description"`
}

// ResourceAssignment ties a catalog resource to a task. Name and cost are
// snapshots taken at assignment time; a later catalog price change does not
// rewrite existing assignments.
type ResourceAssignment struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ResourceID string    `json:"resourceId" bson:"resourceId"`
	Name       string    `json:"name" bson:"name"`
	Cost       float64   `json:"cost" bson:"cost"`
	AssignedAt time.Time `json:"assignedAt" bson:"assignedAt"`
}
