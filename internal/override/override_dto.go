package override

import (
	"fleetops/internal/leave"
	"fleetops/internal/shared/dateutil"
)

type CreateOverrideRequest struct {
	LeaveID      uint   `json:"leave_id" binding:"required"`
	OverrideDate string `json:"override_date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}

// BulkCreateOverrideRequest stamps the same window onto several leaves at
// once, one shift callout covering multiple drivers.
type BulkCreateOverrideRequest struct {
	LeaveIDs     []uint `json:"leave_ids" binding:"required,min=1"`
	OverrideDate string `json:"override_date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}

type OverrideResponse struct {
	ID           uint   `json:"id"`
	LeaveID      uint   `json:"leave_id"`
	OverrideDate string `json:"override_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Reason       string `json:"reason"`
	CreatedBy    string `json:"created_by,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type BulkItemResult struct {
	LeaveID  uint              `json:"leave_id"`
	Override *OverrideResponse `json:"override,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type BulkCreateResponse struct {
	Results []BulkItemResult `json:"results"`
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Total   int              `json:"total"`
}

// DeleteOverrideResponse reports the jobs that were scheduled into the
// window that just lost its coverage, so the caller can prompt for
// reassignment.
type DeleteOverrideResponse struct {
	Deleted      bool                    `json:"deleted"`
	AffectedJobs []leave.AffectedJobView `json:"affected_jobs"`
	Count        int                     `json:"count"`
}

type AvailabilityWindowView struct {
	OverrideID uint   `json:"override_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason"`
}

type AvailabilityResponse struct {
	Available bool                    `json:"available"`
	Window    *AvailabilityWindowView `json:"window,omitempty"`
}

func ToOverrideResponse(o *LeaveOverride) OverrideResponse {
	return OverrideResponse{
		ID:           o.ID,
		LeaveID:      o.LeaveID,
		OverrideDate: dateutil.FormatDate(o.OverrideDate),
		StartTime:    o.StartTime,
		EndTime:      o.EndTime,
		Reason:       o.Reason,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func ToOverrideResponses(rows []LeaveOverride) []OverrideResponse {
	out := make([]OverrideResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToOverrideResponse(&rows[i]))
	}
	return out
}
