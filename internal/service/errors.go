package service

import (
	"errors"

	"laundrybill/internal/repository"
	"laundrybill/pkg/apperror"

	"github.com/google/uuid"
)

// storeError maps a repository failure onto the application taxonomy.
func storeError(resource, op string, err error) error {
	var appErr *apperror.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NewNotFoundError(resource)
	default:
		return apperror.NewPersistenceError(op, err)
	}
}

// parseID treats a malformed id like an unknown one.
func parseID(resource, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewNotFoundError(resource)
	}
	return id, nil
}
