package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// orderedOptions preloads supply options in ledger order.
func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID finds a product by its ID with its supply options in ledger order
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("SupplyOptions", orderedOptions).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Preload("SupplyOptions", orderedOptions)
	query = applyFilter(query, filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}

// Save persists a product, replacing its supply options wholesale so
// the stored row order always matches the in-memory ledger order.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		options := model.SupplyOptions
		model.SupplyOptions = nil

		if err := tx.Omit("SupplyOptions").Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", model.ID).
			Delete(&models.SupplyOptionModel{}).Error; err != nil {
			return err
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(&options).Error
	})
}

// Delete removes a product and its supply options
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).
			Delete(&models.SupplyOptionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies common list filter options to a query. Search
// matches against the name column all filtered tables carry.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir != "asc" {
		orderDir = "desc"
	}
	query = query.Order(orderBy + " " + orderDir)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}
