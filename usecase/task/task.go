package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListTasks returns every task of the user, completed ones included; clients filter.
func (uc *UseCase) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, userID)
}

func (uc *UseCase) AddTask(ctx context.Context, userID string, in domain.NewTask) (*domain.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	task := &domain.Task{
		Title:    in.Title,
		Content:  in.Content,
		Priority: in.Priority,
	}
	if err := uc.tasks.Create(ctx, userID, task); err != nil {
		return nil, err
	}
	uc.logger.Debug("task created", zap.String("user_id", userID), zap.String("task_id", task.ID))
	return task, nil
}

func (uc *UseCase) CompleteTask(ctx context.Context, userID, id string) error {
	if id == "" {
		return domain.NewError(domain.ErrCodeInvalid, "missing task id")
	}
	return uc.tasks.Complete(ctx, userID, id)
}
