package services

import (
	"errors"

	"ideaforge/internal/apperr"

	"gorm.io/gorm"
)

// notFoundOr maps a missing row to NotFound and everything else to Internal.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource)
	}
	return internal(err)
}

// internal passes domain errors through and wraps the rest.
func internal(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal(err)
}
