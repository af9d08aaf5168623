package repository

import (
	"errors"

	"github.com/amirasaad/payouts/pkg/domain"
	"gorm.io/gorm"
)

// mapError converts GORM errors to domain errors so callers never import gorm.
// Unmapped errors are returned unchanged.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	default:
		return err
	}
}

// wrap runs a GORM operation and maps its error.
//
//	err := wrap(func() error {
//	    return r.db.WithContext(ctx).Create(&row).Error
//	})
func wrap(op func() error) error {
	return mapError(op())
}
