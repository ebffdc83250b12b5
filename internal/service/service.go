// Package service defines the backend operations the CLI commands depend on.
package service

import (
	"context"

	"github.com/fastygo/taskie/domain"
)

// Service is implemented by remote.Client. Commands never talk HTTP directly.
type Service interface {
	// Register creates an account and returns the server's message.
	Register(ctx context.Context, creds domain.Credentials) (string, error)

	// Login authenticates and returns the session token.
	Login(ctx context.Context, creds domain.Credentials) (string, error)

	// ListTasks returns the incomplete tasks in server order.
	// A response without any task fails with domain.ErrNoTasks.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// AddTask creates a task and returns it with its server-assigned id.
	AddTask(ctx context.Context, task domain.NewTask) (domain.Task, error)

	// CompleteTask marks a task completed.
	CompleteTask(ctx context.Context, taskID string) error

	// DeleteTask is not backed by the server and always succeeds.
	DeleteTask(ctx context.Context, taskID string) error

	// UserProfile returns the profile with the number of open tasks.
	UserProfile(ctx context.Context) (domain.UserProfile, error)
}
