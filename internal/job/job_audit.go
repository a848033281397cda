package job

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Audit is an append-only change record written alongside every job
// mutation the leave engine performs. Rows are never updated or deleted.
type Audit struct {
	ID    uint `gorm:"primaryKey"`
	JobID uint `gorm:"not null;index"`

	OldStatus string `gorm:"type:varchar(32)"`
	NewStatus string `gorm:"type:varchar(32)"`

	OldDriverID     *uint
	OldVehicleID    *uint
	OldContractorID *uint
	NewDriverID     *uint
	NewVehicleID    *uint
	NewContractorID *uint

	Reason    string    `gorm:"type:varchar(255)"`
	ChangedBy string    `gorm:"type:varchar(64)"`
	ChangedAt time.Time `gorm:"not null"`
}

func (Audit) TableName() string {
	return "job_audits"
}

//go:generate mockgen -source=job_audit.go -destination=mock/job_audit_repo_mock.go -package=mock
type AuditRepository interface {
	WithTx(tx *gorm.DB) AuditRepository
	Create(ctx context.Context, a *Audit) error
	ListByJob(ctx context.Context, jobID uint) ([]Audit, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) WithTx(tx *gorm.DB) AuditRepository {
	return &auditRepository{db: tx}
}

func (r *auditRepository) Create(ctx context.Context, a *Audit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditRepository) ListByJob(ctx context.Context, jobID uint) ([]Audit, error) {
	var audits []Audit
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("changed_at").
		Find(&audits).Error
	return audits, err
}
