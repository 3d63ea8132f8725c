package repository

import (
	"context"

	"gorm.io/gorm"

	"aivault/internal/model"
)

// ScanRepository defines scan history persistence operations.
type ScanRepository interface {
	Create(ctx context.Context, scan *model.Scan) error
	ListByUsername(ctx context.Context, username string) ([]model.Scan, error)
}

type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository creates a new scan history repository.
func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

// Create inserts a new scan record.
func (r *scanRepository) Create(ctx context.Context, scan *model.Scan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

// ListByUsername returns all scans for a user, oldest first.
func (r *scanRepository) ListByUsername(ctx context.Context, username string) ([]model.Scan, error) {
	var scans []model.Scan
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("id").Find(&scans).Error; err != nil {
		return nil, err
	}
	return scans, nil
}
