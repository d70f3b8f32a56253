package models

import "testing"

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  PriorityLevel
	}{
		{"LOW", PriorityLow},
		{"low", PriorityLow},
		{" medium ", PriorityMedium},
		{"High", PriorityHigh},
		{"CRITICAL", PriorityCritical},
		{"urgent", PriorityCritical},
		{"nonsense", PriorityMedium},
		{"", PriorityMedium},
	}

	for _, tt := range tests {
		if got := ParsePriority(tt.input); got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		input string
		want  TaskStatus
	}{
		{"PENDING", StatusPending},
		{"in progress", StatusInProgress},
		{"IN_PROGRESS", StatusInProgress},
		{"in-review", StatusInReview},
		{"done", StatusCompleted},
		{"COMPLETED", StatusCompleted},
		{"whatever", StatusPending},
		{"", StatusPending},
	}

	for _, tt := range tests {
		if got := ParseTaskStatus(tt.input); got != tt.want {
			t.Errorf("ParseTaskStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseProjectStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ProjectStatus
	}{
		{"PLANNED", ProjectPlanned},
		{"on hold", ProjectOnHold},
		{"paused", ProjectOnHold},
		{"in_progress", ProjectInProgress},
		{"completed", ProjectCompleted},
		{"unknown", ProjectPlanned},
	}

	for _, tt := range tests {
		if got := ParseProjectStatus(tt.input); got != tt.want {
			t.Errorf("ParseProjectStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"manager", RoleManager},
		{"MANAGER", RoleManager},
		{"project manager", RoleManager},
		{"contributor", RoleContributor},
		{"member", RoleContributor},
		// Unknown roles must never escalate to manager.
		{"admin", RoleContributor},
		{"", RoleContributor},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.input); got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTaskStatusLabel(t *testing.T) {
	if got := TaskStatusLabel(StatusInReview); got != "In review" {
		t.Errorf("TaskStatusLabel(StatusInReview) = %q, want %q", got, "In review")
	}
	if got := TaskStatusLabel(TaskStatus("bogus")); got != "Pending" {
		t.Errorf("TaskStatusLabel(bogus) = %q, want %q", got, "Pending")
	}
}
