// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fastygo/taskie/domain"
)

// NoData is printed when the backend returned no tasks at all.
const NoData = "no data available"

// FormatTask formats one task line.
// Format: "{N:>4}  {PRIORITY}  {TITLE}  [{ID}]\n", followed by an indented
// content line when the task has content.
func FormatTask(w io.Writer, num int, task domain.Task) {
	fmt.Fprintf(w, "%4d  %s  %s  [%s]\n", num, PriorityLabel(task.Priority), normalize(task.Title, "(untitled)"), task.ID)
	if content := strings.TrimSpace(task.Content); content != "" {
		fmt.Fprintf(w, "      %s\n", normalize(content, ""))
	}
}

// FormatTasks numbers tasks from 1.
func FormatTasks(w io.Writer, tasks []domain.Task) {
	for i, t := range tasks {
		FormatTask(w, i+1, t)
	}
}

// FormatProfile prints the profile as aligned key/value lines.
func FormatProfile(w io.Writer, p domain.UserProfile) {
	fmt.Fprintf(w, "name:   %s\n", normalize(p.Name, "(unnamed)"))
	fmt.Fprintf(w, "email:  %s\n", p.Email)
	fmt.Fprintf(w, "tasks:  %d\n", p.TaskCount)
}

// PriorityLabel returns a fixed-width label for a priority level.
func PriorityLabel(p int) string {
	switch p {
	case domain.PriorityLow:
		return "low "
	case domain.PriorityMedium:
		return "med "
	case domain.PriorityHigh:
		return "high"
	default:
		return "?   "
	}
}

// normalize folds newlines into spaces and substitutes fallback for blank text.
func normalize(text, fallback string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}
