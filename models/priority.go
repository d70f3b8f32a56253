package models

import "strings"

type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "LOW"
	PriorityMedium   PriorityLevel = "MEDIUM"
	PriorityHigh     PriorityLevel = "HIGH"
	PriorityCritical PriorityLevel = "CRITICAL"
)

var priorityLookup = map[string]PriorityLevel{
	"LOW":      PriorityLow,
	"MEDIUM":   PriorityMedium,
	"NORMAL":   PriorityMedium,
	"HIGH":     PriorityHigh,
	"CRITICAL": PriorityCritical,
	"URGENT":   PriorityCritical,
}

// AllPriorities lists the catalog of priority levels in ascending order.
func AllPriorities() []PriorityLevel {
	return []PriorityLevel{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// ParsePriority maps a loosely formatted priority description to a PriorityLevel.
// Unrecognized or empty input falls back to PriorityMedium.
func ParsePriority(description string) PriorityLevel {
	if level, ok := priorityLookup[normalizeDescription(description)]; ok {
		return level
	}
	return PriorityMedium
}

func normalizeDescription(description string) string {
	normalized := strings.ToUpper(strings.TrimSpace(description))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return strings.ReplaceAll(normalized, "-", "_")
}
