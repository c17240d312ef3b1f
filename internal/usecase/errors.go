package usecase

import (
	"errors"

	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"
)

// repoError converts a repository error into an AppError. Errors that are
// already AppErrors pass through unchanged.
func repoError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Conflict("Resource already exists")
	default:
		return apperror.Internal(err)
	}
}
