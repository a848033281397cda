package reassignment

import (
	"time"
)

// Audit categories, derived from which reference a directive supplies.
// Contractor wins over driver, driver over vehicle.
const (
	CategoryContractor = "contractor"
	CategoryDriver     = "driver"
	CategoryVehicle    = "vehicle"
)

// JobReassignment is the append-only record of one job being moved off a
// driver on leave. Rows are never updated or deleted, they survive the
// deletion of the leave that triggered them.
type JobReassignment struct {
	ID      uint `gorm:"primaryKey"`
	JobID   uint `gorm:"not null;index"`
	LeaveID uint `gorm:"not null;index"`

	OldDriverID     *uint
	OldVehicleID    *uint
	OldContractorID *uint
	NewDriverID     *uint
	NewVehicleID    *uint
	NewContractorID *uint

	Category     string  `gorm:"type:varchar(16);not null"`
	Notes        *string `gorm:"type:varchar(255)"`
	ReassignedBy string  `gorm:"type:varchar(64)"`

	CreatedAt time.Time
}

func (JobReassignment) TableName() string {
	return "job_reassignments"
}
