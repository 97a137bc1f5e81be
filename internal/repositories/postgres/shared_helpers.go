package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
)

// baseRepository carries the connection every gorm repository falls back to
type baseRepository struct {
	db *gorm.DB
}

// getDB prefers an explicit transaction over the repository connection
func (r baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// wrapError annotates err and maps driver errors onto the repository sentinels
func wrapError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case repositories.IsNotFoundError(err):
		return fmt.Errorf("%s: %w", msg, repositories.ErrNotFound)
	case repositories.IsDuplicateError(err):
		return fmt.Errorf("%s: %w", msg, repositories.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
