package leave

import (
	"time"

	"gorm.io/gorm"
)

const (
	TypeSick      = "sick"
	TypeVacation  = "vacation"
	TypePersonal  = "personal"
	TypeEmergency = "emergency"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

func IsValidType(t string) bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeEmergency:
		return true
	}
	return false
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// BlockingStatuses are the statuses that count for overlap detection and for
// availability checks. Rejected and cancelled leaves hold no dates.
func BlockingStatuses() []string {
	return []string{StatusApproved, StatusPending}
}

// DriverLeave is an inclusive date range during which a driver is expected to
// be unavailable. Dates are stored at UTC midnight.
type DriverLeave struct {
	ID       uint   `gorm:"primaryKey"`
	DriverID uint   `gorm:"not null;index:idx_driver_leaves_driver_dates"`
	Type     string `gorm:"type:varchar(16);not null"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_driver_leaves_driver_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_driver_leaves_driver_dates"`

	Status    string  `gorm:"type:varchar(16);not null;default:'pending';index"`
	Reason    *string `gorm:"type:varchar(512)"`
	CreatedBy string  `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DriverLeave) TableName() string {
	return "driver_leaves"
}

// Covers reports whether the given date falls inside the leave range,
// both endpoints inclusive.
func (l *DriverLeave) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
