package repositories

import (
	"errors"
	"fmt"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"gorm.io/gorm"
)

// storeError marks a driver failure as an unavailable store, keeping the cause
func storeError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

// recordError maps GORM errors on academic records to domain errors
func recordError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrResourceNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrResourceConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrInvalidReference
	default:
		return storeError(err)
	}
}

// sortDirection normalises a user supplied order to ASC or DESC
func sortDirection(order, fallback string) string {
	switch order {
	case "asc", "ASC":
		return "ASC"
	case "desc", "DESC":
		return "DESC"
	default:
		return fallback
	}
}
