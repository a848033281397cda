package job

import (
	"context"
	"time"

	"fleetops/internal/shared/gormx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=job_repo.go -destination=mock/job_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uint) (*Job, error)
	// FindForUpdate loads a job under a row lock so a concurrent direct edit
	// cannot race the reassignment that is about to rewrite it.
	FindForUpdate(ctx context.Context, id uint) (*Job, error)
	Update(ctx context.Context, j *Job) error
	// ActiveForDriverInRange returns committed work for the driver with a
	// pickup date inside [start,end], ordered by pickup date then time.
	ActiveForDriverInRange(ctx context.Context, driverID uint, start, end time.Time) ([]Job, error)
	// ActiveForDriverOnDate returns committed work for the driver on one date.
	ActiveForDriverOnDate(ctx context.Context, driverID uint, date time.Time) ([]Job, error)
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

func (r *repository) FindByID(ctx context.Context, id uint) (*Job, error) {
	var j Job
	err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) FindForUpdate(ctx context.Context, id uint) (*Job, error) {
	var j Job
	err := gormx.ForUpdate(r.db.WithContext(ctx)).First(&j, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *repository) Update(ctx context.Context, j *Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *repository) ActiveForDriverInRange(ctx context.Context, driverID uint, start, end time.Time) ([]Job, error) {
	var jobs []Job
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Where("pickup_date >= ? AND pickup_date <= ?", start, end).
		Where("status IN ?", ActiveStatuses()).
		Order("pickup_date, pickup_time").
		Find(&jobs).Error
	return jobs, err
}

func (r *repository) ActiveForDriverOnDate(ctx context.Context, driverID uint, date time.Time) ([]Job, error) {
	var jobs []Job
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Where("pickup_date = ?", date).
		Where("status IN ?", ActiveStatuses()).
		Order("pickup_time").
		Find(&jobs).Error
	return jobs, err
}
