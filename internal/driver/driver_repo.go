package driver

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=driver_repo.go -destination=mock/driver_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActive(ctx context.Context, id uint) (*Driver, error)
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

func (r *repository) FindActive(ctx context.Context, id uint) (*Driver, error) {
	var d Driver
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
