package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repositories: record not found")
	// ErrDuplicate indicates an insert violated a unique constraint.
	ErrDuplicate = errors.New("repositories: duplicate entry")
)

// translate maps gorm and driver errors onto the repository error
// taxonomy so that nothing above this layer sees a raw storage error.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateEntryError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// isDuplicateEntryError matches the unique-constraint message of the
// supported drivers. Neither sqlite nor mysql exposes a typed error
// through gorm for this.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") // MySQL
}
