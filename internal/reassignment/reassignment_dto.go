package reassignment

import (
	"fleetops/internal/job"
)

// Directive names a job and the replacement references for it. A nil or zero
// reference means "not supplied"; what that does to the job depends on its
// status category, see policy.go.
type Directive struct {
	JobID           uint   `json:"job_id" binding:"required"`
	NewDriverID     *uint  `json:"new_driver_id"`
	NewVehicleID    *uint  `json:"new_vehicle_id"`
	NewContractorID *uint  `json:"new_contractor_id"`
	Notes           string `json:"notes"`
}

type ReassignRequest struct {
	Assignments []Directive `json:"assignments" binding:"required,min=1,dive"`
	// Atomic makes the batch all-or-nothing; the default treats every
	// directive independently and reports per-item outcomes.
	Atomic bool `json:"atomic"`
}

const (
	OutcomeReassigned = "reassigned"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
)

type ItemResult struct {
	JobID     uint   `json:"job_id"`
	Outcome   string `json:"outcome"`
	NewStatus string `json:"new_status,omitempty"`
	Category  string `json:"category,omitempty"`
	Error     string `json:"error,omitempty"`
}

type ReassignResponse struct {
	LeaveID uint         `json:"leave_id"`
	Results []ItemResult `json:"results"`
	Success int          `json:"success"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	Total   int          `json:"total"`
}

type ReassignmentResponse struct {
	ID              uint    `json:"id"`
	JobID           uint    `json:"job_id"`
	LeaveID         uint    `json:"leave_id"`
	OldDriverID     *uint   `json:"old_driver_id"`
	OldVehicleID    *uint   `json:"old_vehicle_id"`
	OldContractorID *uint   `json:"old_contractor_id"`
	NewDriverID     *uint   `json:"new_driver_id"`
	NewVehicleID    *uint   `json:"new_vehicle_id"`
	NewContractorID *uint   `json:"new_contractor_id"`
	Category        string  `json:"category"`
	Notes           *string `json:"notes"`
	ReassignedBy    string  `json:"reassigned_by,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToReassignmentResponse(r *JobReassignment) ReassignmentResponse {
	return ReassignmentResponse{
		ID:              r.ID,
		JobID:           r.JobID,
		LeaveID:         r.LeaveID,
		OldDriverID:     r.OldDriverID,
		OldVehicleID:    r.OldVehicleID,
		OldContractorID: r.OldContractorID,
		NewDriverID:     r.NewDriverID,
		NewVehicleID:    r.NewVehicleID,
		NewContractorID: r.NewContractorID,
		Category:        r.Category,
		Notes:           r.Notes,
		ReassignedBy:    r.ReassignedBy,
		CreatedAt:       r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func ToReassignmentResponses(rows []JobReassignment) []ReassignmentResponse {
	out := make([]ReassignmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToReassignmentResponse(&rows[i]))
	}
	return out
}

type JobAuditView struct {
	ID              uint   `json:"id"`
	JobID           uint   `json:"job_id"`
	OldStatus       string `json:"old_status"`
	NewStatus       string `json:"new_status"`
	OldDriverID     *uint  `json:"old_driver_id"`
	OldVehicleID    *uint  `json:"old_vehicle_id"`
	OldContractorID *uint  `json:"old_contractor_id"`
	NewDriverID     *uint  `json:"new_driver_id"`
	NewVehicleID    *uint  `json:"new_vehicle_id"`
	NewContractorID *uint  `json:"new_contractor_id"`
	Reason          string `json:"reason"`
	ChangedBy       string `json:"changed_by,omitempty"`
	ChangedAt       string `json:"changed_at"`
}

func ToJobAuditViews(audits []job.Audit) []JobAuditView {
	out := make([]JobAuditView, 0, len(audits))
	for _, a := range audits {
		out = append(out, JobAuditView{
			ID:              a.ID,
			JobID:           a.JobID,
			OldStatus:       a.OldStatus,
			NewStatus:       a.NewStatus,
			OldDriverID:     a.OldDriverID,
			OldVehicleID:    a.OldVehicleID,
			OldContractorID: a.OldContractorID,
			NewDriverID:     a.NewDriverID,
			NewVehicleID:    a.NewVehicleID,
			NewContractorID: a.NewContractorID,
			Reason:          a.Reason,
			ChangedBy:       a.ChangedBy,
			ChangedAt:       a.ChangedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return out
}
