package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("duplicate record")
	ErrReferenceViolation = errors.New("foreign key violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func translatePgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrReferenceViolation, pqErr.Constraint)
		}
	}

	return err
}
