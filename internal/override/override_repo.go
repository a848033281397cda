package override

import (
	"context"
	"time"

	"fleetops/internal/shared/gormx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=override_repo.go -destination=mock/override_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, o *LeaveOverride) error
	FindByID(ctx context.Context, id uint) (*LeaveOverride, error)
	Delete(ctx context.Context, id uint) error
	ListByLeave(ctx context.Context, leaveID uint) ([]LeaveOverride, error)
	// ListByLeaveAndDate returns active overrides for one leave and date,
	// ordered by start time. With lock set the rows are read FOR UPDATE so
	// two concurrent creates cannot both pass the overlap check.
	ListByLeaveAndDate(ctx context.Context, leaveID uint, date time.Time, lock bool) ([]LeaveOverride, error)
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

func (r *repository) Create(ctx context.Context, o *LeaveOverride) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveOverride, error) {
	var o LeaveOverride
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&LeaveOverride{}, "id = ?", id).Error
}

func (r *repository) ListByLeave(ctx context.Context, leaveID uint) ([]LeaveOverride, error) {
	var rows []LeaveOverride
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Order("override_date, start_time").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByLeaveAndDate(ctx context.Context, leaveID uint, date time.Time, lock bool) ([]LeaveOverride, error) {
	q := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Where("override_date = ?", date)
	if lock {
		q = gormx.ForUpdate(q)
	}

	var rows []LeaveOverride
	err := q.Order("start_time").Find(&rows).Error
	return rows, err
}
