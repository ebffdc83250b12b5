package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/repository"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string][]domain.Task // userID -> tasks in creation order
}

// NewTaskRepository returns an empty in-memory task repository.
func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{tasks: make(map[string][]domain.Task)}
}

func (r *taskRepository) List(ctx context.Context, userID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, len(r.tasks[userID]))
	copy(out, r.tasks[userID])
	return out, nil
}

func (r *taskRepository) Create(ctx context.Context, userID string, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	task.ID = uuid.NewString()
	task.IsCompleted = false

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[userID] = append(r.tasks[userID], *task)
	return nil
}

func (r *taskRepository) Complete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks[userID] {
		if r.tasks[userID][i].ID == id {
			r.tasks[userID][i].IsCompleted = true
			return nil
		}
	}
	return domain.ErrTaskNotFound
}
