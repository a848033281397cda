package leave

import (
	"fleetops/internal/job"
	"fleetops/internal/shared/dateutil"
)

type CreateLeaveRequest struct {
	DriverID  uint   `json:"driver_id" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}

// UpdateLeaveRequest is a partial patch. Nil means "leave the field alone";
// the driver is never editable.
type UpdateLeaveRequest struct {
	LeaveType *string `json:"leave_type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
	Reason    *string `json:"reason"`
}

type LeaveResponse struct {
	ID        uint    `json:"id"`
	DriverID  uint    `json:"driver_id"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	Reason    *string `json:"reason"`
	CreatedBy string  `json:"created_by,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// AffectedJobView is the slim job projection returned wherever the engine
// reports work colliding with a leave.
type AffectedJobView struct {
	JobID        uint   `json:"job_id"`
	Status       string `json:"status"`
	PickupDate   string `json:"pickup_date"`
	PickupTime   string `json:"pickup_time"`
	DriverID     *uint  `json:"driver_id"`
	VehicleID    *uint  `json:"vehicle_id"`
	ContractorID *uint  `json:"contractor_id"`
}

type CreateLeaveResponse struct {
	Leave                LeaveResponse     `json:"leave"`
	AffectedJobs         []AffectedJobView `json:"affected_jobs"`
	AffectedJobsCount    int               `json:"affected_jobs_count"`
	RequiresReassignment bool              `json:"requires_reassignment"`
}

type OnLeaveResponse struct {
	OnLeave bool           `json:"on_leave"`
	Leave   *LeaveResponse `json:"leave,omitempty"`
}

func ToLeaveResponse(l *DriverLeave) LeaveResponse {
	return LeaveResponse{
		ID:        l.ID,
		DriverID:  l.DriverID,
		LeaveType: l.Type,
		StartDate: dateutil.FormatDate(l.StartDate),
		EndDate:   dateutil.FormatDate(l.EndDate),
		Status:    l.Status,
		Reason:    l.Reason,
		CreatedBy: l.CreatedBy,
		CreatedAt: l.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: l.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func ToLeaveResponses(leaves []DriverLeave) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for i := range leaves {
		out = append(out, ToLeaveResponse(&leaves[i]))
	}
	return out
}

func ToAffectedJobView(j *job.Job) AffectedJobView {
	return AffectedJobView{
		JobID:        j.ID,
		Status:       j.Status,
		PickupDate:   dateutil.FormatDate(j.PickupDate),
		PickupTime:   j.PickupTime,
		DriverID:     j.DriverID,
		VehicleID:    j.VehicleID,
		ContractorID: j.ContractorID,
	}
}

func ToAffectedJobViews(jobs []job.Job) []AffectedJobView {
	out := make([]AffectedJobView, 0, len(jobs))
	for i := range jobs {
		out = append(out, ToAffectedJobView(&jobs[i]))
	}
	return out
}
