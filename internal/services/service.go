package service

import (
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/aaravmahajanofficial/storefront/internal/services")

// repoError maps a repository failure to what the caller sees: a missing row
// becomes NotFound, anything else is a storage failure.
func repoError(err error, notFound, failed string) *appErrors.AppError {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.NotFoundError(notFound).WithError(err)
	}

	return appErrors.DatabaseError(failed).WithError(err)
}

// txError keeps the AppError raised inside a transaction callback. Begin and
// commit failures carry no AppError and surface as storage failures.
func txError(err error, failed string) *appErrors.AppError {
	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	return appErrors.DatabaseError(failed).WithError(err)
}
