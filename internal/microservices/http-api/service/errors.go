package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain errors. Services wrap these with context; handlers map them to status codes with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

// notFoundOr translates gorm's miss into ErrNotFound and passes everything else through
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
