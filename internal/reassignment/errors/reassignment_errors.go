package reassignmenterrors

import (
	"fmt"
	"net/http"

	"fleetops/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrNoAssignments = apperror.New(
		apperror.CodeInvalidInput,
		"assignments list cannot be empty",
		http.StatusBadRequest,
	)
	ErrNotesTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"notes must be at most 255 characters",
		http.StatusBadRequest,
	)
)

func JobNotFound(jobID uint) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("job %d not found", jobID),
		http.StatusNotFound,
	)
}

// JobNotOnLeaveDriver fires when a directive targets a job whose current
// driver is not the one going on leave.
func JobNotOnLeaveDriver(jobID uint) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("job %d is not assigned to the driver on leave", jobID),
		http.StatusConflict,
	)
}

func DriverNotFound(driverID uint) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("driver %d not found or inactive", driverID),
		http.StatusBadRequest,
	)
}

// DriverUnavailable rejects handing a job to a driver who is themselves on
// approved leave on the pickup date.
func DriverUnavailable(driverID uint, date string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("driver %d is on leave on %s", driverID, date),
		http.StatusConflict,
	)
}

// NoChange fires when a directive supplies references but the job would end
// up exactly as it already is.
func NoChange(jobID uint) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("reassignment of job %d results in no change", jobID),
		http.StatusConflict,
	)
}

// AtomicFailed wraps the first per-item failure of an atomic batch after the
// whole batch has been rolled back.
func AtomicFailed(jobID uint, cause error) *apperror.AppError {
	return apperror.Wrap(
		cause,
		apperror.CodeTransactionFailed,
		fmt.Sprintf("reassignment batch rolled back: job %d failed", jobID),
		http.StatusConflict,
	)
}
