package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/miniapps-backend/internal/domain"
)

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, due_date, due_time, category, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Time,
		task.Category,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return err
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, due_time, category, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, due_time, category, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at
	`

	tasks := []*domain.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, userID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) ListByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) ([]*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_date, due_time, category, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND category = $2
		ORDER BY created_at
	`

	tasks := []*domain.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, userID, category)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, due_time = $5, category = $6, completed = $7, updated_at = $8
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Time,
		task.Category,
		task.Completed,
		time.Now(),
	)

	return err
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
