package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/grocery/backend/internal/domain/settings"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
)

// GormSettingsRepository implements settings.Repository using GORM.
// The table holds at most one row.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the settings record, or shared.ErrNotFound when absent
func (r *GormSettingsRepository) Load(ctx context.Context) (*settings.StoreSettings, error) {
	var model models.StoreSettingsModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the settings record
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.StoreSettings) error {
	var model models.StoreSettingsModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(&model).Error
}
