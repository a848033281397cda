package overrideerrors

import (
	"fmt"
	"net/http"

	"fleetops/internal/shared/apperror"
)

var (
	ErrOverrideNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave override not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrLeaveNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"overrides can only be added to approved leaves",
		http.StatusConflict,
	)
	ErrDateOutsideLeave = apperror.New(
		apperror.CodeInvalidInput,
		"override date must fall within the leave range",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM or HH:MM:SS",
		http.StatusBadRequest,
	)
	ErrInvalidTimeWindow = apperror.New(
		apperror.CodeInvalidInput,
		"start_time must be before end_time",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrReasonTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"reason exceeds maximum length of 512 characters",
		http.StatusBadRequest,
	)
	ErrTooManyLeaves = apperror.New(
		apperror.CodeInvalidInput,
		"bulk override is limited to 100 leaves per call",
		http.StatusBadRequest,
	)
)

func OverrideOverlap(start, end string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("an override already covers %s to %s on that date", start, end),
		http.StatusConflict,
	)
}
