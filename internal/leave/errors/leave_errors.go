package leaveerrors

import (
	"fmt"
	"net/http"

	"fleetops/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date cannot be before start_date",
		http.StatusBadRequest,
	)
	ErrDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"leave dates cannot be in the past",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type, must be one of: sick, vacation, personal, emergency",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid status, must be one of: pending, approved, rejected, cancelled",
		http.StatusBadRequest,
	)
	ErrReasonTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"reason exceeds maximum length of 512 characters",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
)

// DriverNotFound names the driver so batch callers can tell entries apart.
func DriverNotFound(driverID uint) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("driver %d not found or inactive", driverID),
		http.StatusBadRequest,
	)
}

// LeaveOverlap reports the colliding leave's range, matching what the
// operator sees on the schedule.
func LeaveOverlap(start, end string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("driver already has a leave scheduled from %s to %s", start, end),
		http.StatusConflict,
	)
}

// ApprovalBlocked fires when a leave is approved while affected jobs remain.
func ApprovalBlocked(count int) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("cannot approve leave: %d job(s) still require reassignment", count),
		http.StatusConflict,
	)
}
