package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
)

// GormDistributorRepository implements partner.DistributorRepository using GORM
type GormDistributorRepository struct {
	db *gorm.DB
}

// NewGormDistributorRepository creates a new GormDistributorRepository
func NewGormDistributorRepository(db *gorm.DB) *GormDistributorRepository {
	return &GormDistributorRepository{db: db}
}

// FindByID finds a distributor by its ID
func (r *GormDistributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	var model models.DistributorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all distributors matching the filter
func (r *GormDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Distributor, error) {
	var distributorModels []models.DistributorModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.DistributorModel{}), filter)

	if err := query.Find(&distributorModels).Error; err != nil {
		return nil, err
	}

	distributors := make([]partner.Distributor, len(distributorModels))
	for i := range distributorModels {
		distributors[i] = *distributorModels[i].ToDomain()
	}
	return distributors, nil
}

// Save persists a distributor
func (r *GormDistributorRepository) Save(ctx context.Context, distributor *partner.Distributor) error {
	var model models.DistributorModel
	model.FromDomain(distributor)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a distributor. Supply options keep their weak
// reference and render as "Unknown" afterwards.
func (r *GormDistributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DistributorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
