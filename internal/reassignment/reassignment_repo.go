package reassignment

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=reassignment_repo.go -destination=mock/reassignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *JobReassignment) error
	ListByLeave(ctx context.Context, leaveID uint) ([]JobReassignment, error)
	ListByJob(ctx context.Context, jobID uint) ([]JobReassignment, error)
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

func (r *repository) Create(ctx context.Context, rec *JobReassignment) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) ListByLeave(ctx context.Context, leaveID uint) ([]JobReassignment, error) {
	var rows []JobReassignment
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByJob(ctx context.Context, jobID uint) ([]JobReassignment, error) {
	var rows []JobReassignment
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at").
		Find(&rows).Error
	return rows, err
}
