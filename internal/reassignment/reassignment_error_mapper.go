package reassignment

import (
	"errors"
	"net/http"

	reassignmenterrors "fleetops/internal/reassignment/errors"
	"fleetops/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapJobLookupError translates driver-level failures from the locked job
// read into domain errors. Postgres aborts one side of a lock cycle with a
// serialization or deadlock error; the caller should retry the batch, so
// those surface as conflicts rather than server faults.
func mapJobLookupError(jobID uint, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reassignmenterrors.JobNotFound(jobID)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return apperror.Wrap(err, apperror.CodeConflict, "job row is locked by a concurrent reassignment", http.StatusConflict)
		}
	}

	return err
}
