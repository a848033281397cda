package driver

import (
	"time"

	"gorm.io/gorm"
)

// Driver is the crew resource leaves are recorded against. Only the fields
// the leave engine reads are mapped here; the full driver profile belongs to
// the fleet administration surface.
type Driver struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(120);not null"`
	VehicleID *uint  `gorm:"index"`
	IsActive  bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Driver) TableName() string {
	return "drivers"
}
