package repository

import (
	"context"

	"github.com/fastygo/taskie/domain"
)

type TaskRepository interface {
	// List returns a user's tasks in creation order, completed ones included.
	List(ctx context.Context, userID string) ([]domain.Task, error)
	// Create assigns the task a fresh id and stores it.
	Create(ctx context.Context, userID string, task *domain.Task) error
	Complete(ctx context.Context, userID, id string) error
}
