package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskie/domain"
	"github.com/fastygo/taskie/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) List(ctx context.Context, userID string) ([]domain.Task, error) {
	const query = `
	SELECT id, title, content, is_completed, priority
	FROM tasks
	WHERE user_id = $1
	ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, userID string, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	task.ID = uuid.NewString()
	task.IsCompleted = false

	const query = `
	INSERT INTO tasks (id, user_id, title, content, is_completed, priority)
	VALUES ($1, $2, $3, $4, FALSE, $5)
	`
	_, err := r.pool.Exec(ctx, query, task.ID, userID, task.Title, task.Content, task.Priority)
	return err
}

func (r *taskRepository) Complete(ctx context.Context, userID, id string) error {
	const query = `UPDATE tasks SET is_completed = TRUE WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(&task.ID, &task.Title, &task.Content, &task.IsCompleted, &task.Priority); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
