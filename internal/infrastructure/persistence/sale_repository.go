package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocery/backend/internal/domain/sales"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/persistence/models"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// orderedLines preloads sale lines in submission order.
func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID finds a sale by its ID with its lines in submission order
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedLines).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindHistory returns sales matching the filter, newest first.
// Trash=false also matches rows whose flag was never written (NULL),
// so records predating the flag stay visible in the default view.
func (r *GormSaleRepository) FindHistory(ctx context.Context, filter sales.HistoryFilter) ([]sales.Sale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Preload("Lines", orderedLines)

	if filter.Trash {
		query = query.Where("is_deleted = ?", true)
	} else {
		query = query.Where("is_deleted = ? OR is_deleted IS NULL", false)
	}

	if filter.Day != nil {
		dayStart := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		query = query.Where("created_at >= ? AND created_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var saleModels []models.SaleModel
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// FindCreatedBetween returns sales created in [from, to)
func (r *GormSaleRepository) FindCreatedBetween(ctx context.Context, from, to time.Time, includeTrashed bool) ([]sales.Sale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Preload("Lines", orderedLines).
		Where("created_at >= ? AND created_at < ?", from, to)
	if !includeTrashed {
		query = query.Where("is_deleted = ? OR is_deleted IS NULL", false)
	}

	var saleModels []models.SaleModel
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// FindAllSales returns every sale ever recorded
func (r *GormSaleRepository) FindAllSales(ctx context.Context, includeTrashed bool) ([]sales.Sale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Preload("Lines", orderedLines)
	if !includeTrashed {
		query = query.Where("is_deleted = ? OR is_deleted IS NULL", false)
	}

	var saleModels []models.SaleModel
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// Save persists a sale. Lines are immutable once written, so an update
// only touches the sale row itself.
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := model.Lines
		model.Lines = nil

		var count int64
		if err := tx.Model(&models.SaleModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Omit("Lines").Save(&model).Error; err != nil {
			return err
		}
		if count > 0 || len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

// Delete removes a sale and its lines permanently
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.SaleLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SaleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func toDomainSales(saleModels []models.SaleModel) []sales.Sale {
	result := make([]sales.Sale, len(saleModels))
	for i := range saleModels {
		result[i] = *saleModels[i].ToDomain()
	}
	return result
}
