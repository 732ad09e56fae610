package repositories

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	domainerrors "artifact-vault.backend/internal/domain/errors"
)

// translateError maps driver errors onto the domain taxonomy. Foreign-key
// violations become ErrForeignKey so the syncer can drop the local
// reference instead of treating the failure as fatal.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return errors.Join(domainerrors.ErrForeignKey, err)
		case "23505": // unique_violation
			return errors.Join(domainerrors.ErrConflict, err)
		}
	}

	// sqlite reports constraint failures as plain strings
	msg := err.Error()
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return errors.Join(domainerrors.ErrForeignKey, err)
	}
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return errors.Join(domainerrors.ErrConflict, err)
	}
	return err
}
