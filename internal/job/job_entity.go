package job

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses as stored on the wire. The leave engine never creates jobs;
// it only reads and reassigns them.
const (
	StatusNew              = "new"
	StatusPending          = "pending"
	StatusConfirmed        = "confirmed"
	StatusOnTheWay         = "on-the-way"
	StatusOnSite           = "on-site"
	StatusPassengerOnBoard = "passenger-on-board"
	StatusComplete         = "job-complete"
	StatusStoodDown        = "stood-down"
	StatusCanceled         = "canceled"
)

// StatusCategory drives the reassignment policy.
type StatusCategory int

const (
	CategoryNotStarted StatusCategory = iota
	CategoryInProgress
	CategoryOther
)

// CategoryOf buckets a job status. "pending" jobs have no crew committed yet
// and fall through to the free-reassignment bucket.
func CategoryOf(status string) StatusCategory {
	switch status {
	case StatusNew, StatusConfirmed:
		return CategoryNotStarted
	case StatusOnTheWay, StatusOnSite, StatusPassengerOnBoard:
		return CategoryInProgress
	default:
		return CategoryOther
	}
}

// ActiveStatuses lists the statuses that make a job count as committed work
// when scanning a leave range for conflicts.
func ActiveStatuses() []string {
	return []string{
		StatusNew,
		StatusConfirmed,
		StatusOnTheWay,
		StatusOnSite,
		StatusPassengerOnBoard,
	}
}

// Job mirrors the shared job table owned by the dispatch surface. Assignment
// is three parallel nullable references; a contractor supersedes driver and
// vehicle.
type Job struct {
	ID           uint   `gorm:"primaryKey"`
	Status       string `gorm:"type:varchar(32);not null;default:'new';index:idx_jobs_driver_pickup"`
	DriverID     *uint  `gorm:"index:idx_jobs_driver_pickup"`
	VehicleID    *uint  `gorm:"index"`
	ContractorID *uint  `gorm:"index"`

	PickupDate time.Time `gorm:"type:date;not null;index:idx_jobs_driver_pickup"`
	PickupTime string    `gorm:"type:varchar(8);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Job) TableName() string {
	return "jobs"
}

// Assignment is the driver/vehicle/contractor triple snapshotted before and
// after every reassignment.
type Assignment struct {
	DriverID     *uint
	VehicleID    *uint
	ContractorID *uint
}

func (j *Job) Assignment() Assignment {
	return Assignment{
		DriverID:     j.DriverID,
		VehicleID:    j.VehicleID,
		ContractorID: j.ContractorID,
	}
}

func (a Assignment) Equal(b Assignment) bool {
	return equalRef(a.DriverID, b.DriverID) &&
		equalRef(a.VehicleID, b.VehicleID) &&
		equalRef(a.ContractorID, b.ContractorID)
}

func equalRef(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
