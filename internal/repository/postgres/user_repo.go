package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/repository"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (full_name, age, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_user`

	err := r.pool.QueryRow(ctx, query,
		user.FullName, user.Age, user.Email, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id_user, full_name, age, email, password, token, created_at, updated_at FROM users WHERE id_user = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id_user, full_name, age, email, password, token, created_at, updated_at FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT id_user, full_name, age, email, password, token, created_at, updated_at FROM users ORDER BY id_user")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Age, &u.Email, &u.PasswordHash, &u.Token, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = $2, age = $3, email = $4, password = $5, updated_at = $6
		WHERE id_user = $1`

	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Age, user.Email,
		user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateToken(ctx context.Context, id int64, token *string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE users SET token = $2 WHERE id_user = $1", id, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteWithTasks removes the user and all of its tasks in one transaction,
// so a partial cascade is never visible.
func (r *UserRepo) DeleteWithTasks(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM tasks WHERE owner = $1", id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id_user = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.Age, &u.Email,
		&u.PasswordHash, &u.Token, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
