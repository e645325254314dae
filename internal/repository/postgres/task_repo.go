package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/repository"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (description, completed, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_task`

	err := r.pool.QueryRow(ctx, query,
		task.Description, task.Completed, task.Owner,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.pool.QueryRow(ctx,
		"SELECT id_task, description, completed, owner, created_at, updated_at FROM tasks WHERE id_task = $1", id,
	).Scan(&t.ID, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id_task, description, completed, owner, created_at, updated_at FROM tasks WHERE owner = $1 ORDER BY id_task", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET description = $2, completed = $3, owner = $4, updated_at = $5
		WHERE id_task = $1`

	tag, err := r.pool.Exec(ctx, query,
		task.ID, task.Description, task.Completed, task.Owner, task.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id_task = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
