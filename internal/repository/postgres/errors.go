package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tasktrail/backend/internal/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateError maps SQLSTATE constraint violations onto the repository
// sentinel errors so services never see driver types.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return repository.ErrDuplicate
		case codeForeignKeyViolation:
			return repository.ErrForeignKey
		}
	}
	return err
}
