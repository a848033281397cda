package leave

import (
	"context"
	"time"

	"fleetops/internal/shared/dateutil"
	"fleetops/internal/shared/gormx"

	"gorm.io/gorm"
)

// ListFilter narrows List. ActiveOnly keeps leaves whose end date has not
// passed yet.
type ListFilter struct {
	DriverID   *uint
	Status     string
	ActiveOnly bool
	From       *time.Time
	To         *time.Time
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *DriverLeave) error
	FindByID(ctx context.Context, id uint) (*DriverLeave, error)
	Update(ctx context.Context, l *DriverLeave) error
	Delete(ctx context.Context, id uint) error
	// FindOverlapping returns one pending or approved leave for the driver
	// whose range intersects [start,end], or nil when there is none. With
	// lock set the matching row is read FOR UPDATE so two concurrent
	// requests cannot both pass the overlap check.
	FindOverlapping(ctx context.Context, driverID uint, start, end time.Time, excludeID *uint, lock bool) (*DriverLeave, error)
	// FindApprovedCovering returns the approved leave containing the date,
	// or nil when the driver is not on leave that day.
	FindApprovedCovering(ctx context.Context, driverID uint, date time.Time) (*DriverLeave, error)
	List(ctx context.Context, f ListFilter) ([]DriverLeave, error)
	ListByDriver(ctx context.Context, driverID uint) ([]DriverLeave, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *DriverLeave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*DriverLeave, error) {
	var l DriverLeave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *DriverLeave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DriverLeave{}, "id = ?", id).Error
}

func (r *repository) FindOverlapping(ctx context.Context, driverID uint, start, end time.Time, excludeID *uint, lock bool) (*DriverLeave, error) {
	q := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Where("status IN ?", BlockingStatuses()).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if lock {
		q = gormx.ForUpdate(q)
	}

	var leaves []DriverLeave
	if err := q.Limit(1).Find(&leaves).Error; err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, nil
	}
	return &leaves[0], nil
}

func (r *repository) FindApprovedCovering(ctx context.Context, driverID uint, date time.Time) (*DriverLeave, error) {
	var leaves []DriverLeave
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Limit(1).
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, nil
	}
	return &leaves[0], nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]DriverLeave, error) {
	q := r.db.WithContext(ctx).Model(&DriverLeave{})
	if f.DriverID != nil {
		q = q.Where("driver_id = ?", *f.DriverID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ActiveOnly {
		q = q.Where("end_date >= ?", dateutil.Today())
	}
	if f.From != nil {
		q = q.Where("end_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_date <= ?", *f.To)
	}

	var leaves []DriverLeave
	err := q.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListByDriver(ctx context.Context, driverID uint) ([]DriverLeave, error) {
	var leaves []DriverLeave
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}
