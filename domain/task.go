package domain

import "strings"

// Priority levels offered by the task editor.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Task represents a user-owned to-do item. The server assigns ID.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"isCompleted"`
	Priority    int    `json:"taskPriority"`
}

// NewTask is the payload used to create a task.
type NewTask struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority int    `json:"taskPriority"`
}

// Validate checks the fields the backend requires.
func (t NewTask) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewError(ErrCodeInvalid, "task title is required")
	}
	if !ValidPriority(t.Priority) {
		return NewError(ErrCodeInvalid, "task priority must be between 1 and 3")
	}
	return nil
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p int) bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Incomplete returns the tasks that are not completed, preserving order.
func Incomplete(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted {
			out = append(out, t)
		}
	}
	return out
}
