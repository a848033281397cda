package events

import "time"

const OverrideCreatedTopic = "fleet.leave.override.v1"

type OverrideCreatedEvent struct {
	EventType    string    `json:"event_type"`
	OverrideID   uint      `json:"override_id"`
	LeaveID      uint      `json:"leave_id"`
	DriverID     uint      `json:"driver_id"`
	OverrideDate string    `json:"override_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}
