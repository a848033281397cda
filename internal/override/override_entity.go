package override

import (
	"time"

	"gorm.io/gorm"
)

// LeaveOverride carves a same-day working window out of an approved leave,
// during which the driver is available again. Times are stored normalized as
// HH:MM:SS and compared as seconds since midnight; the window is half-open,
// start inclusive, end exclusive.
type LeaveOverride struct {
	ID      uint `gorm:"primaryKey"`
	LeaveID uint `gorm:"not null;index:idx_leave_overrides_leave_date"`

	OverrideDate time.Time `gorm:"type:date;not null;index:idx_leave_overrides_leave_date"`
	StartTime    string    `gorm:"type:varchar(8);not null"`
	EndTime      string    `gorm:"type:varchar(8);not null"`

	Reason    string `gorm:"type:varchar(512);not null"`
	CreatedBy string `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveOverride) TableName() string {
	return "leave_overrides"
}
