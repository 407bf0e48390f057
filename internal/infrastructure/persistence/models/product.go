package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for products
type ProductModel struct {
	BaseModel
	Name          string              `gorm:"type:varchar(200);not null;index"`
	Image         string              `gorm:"type:varchar(500)"`
	Unit          string              `gorm:"type:varchar(20);not null;default:'pcs'"`
	Category      string              `gorm:"type:varchar(100)"`
	SellingPrice  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Qty           decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	SupplyOptions []SupplyOptionModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// SupplyOptionModel is one supply batch row. Position preserves the
// ledger order, which is the consumption order.
type SupplyOptionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position      int             `gorm:"not null"`
	DistributorID *uuid.UUID      `gorm:"type:uuid;index"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MfgDate       *time.Time
	ExpDate       *time.Time
}

// TableName returns the table name for GORM
func (SupplyOptionModel) TableName() string {
	return "supply_options"
}

// ToDomain converts ProductModel to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	options := make([]catalog.SupplyOption, len(m.SupplyOptions))
	for i, opt := range m.SupplyOptions {
		options[i] = catalog.SupplyOption{
			ID:            opt.ID,
			DistributorID: opt.DistributorID,
			CostPrice:     opt.CostPrice,
			Stock:         opt.Stock,
			MfgDate:       opt.MfgDate,
			ExpDate:       opt.ExpDate,
		}
	}
	return &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Image:         m.Image,
		Unit:          m.Unit,
		Category:      m.Category,
		SellingPrice:  m.SellingPrice,
		Qty:           m.Qty,
		SupplyOptions: options,
	}
}

// FromDomain populates ProductModel from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Image = p.Image
	m.Unit = p.Unit
	m.Category = p.Category
	m.SellingPrice = p.SellingPrice
	m.Qty = p.Qty
	m.SupplyOptions = make([]SupplyOptionModel, len(p.SupplyOptions))
	for i, opt := range p.SupplyOptions {
		id := opt.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		m.SupplyOptions[i] = SupplyOptionModel{
			ID:            id,
			ProductID:     p.ID,
			Position:      i,
			DistributorID: opt.DistributorID,
			CostPrice:     opt.CostPrice,
			Stock:         opt.Stock,
			MfgDate:       opt.MfgDate,
			ExpDate:       opt.ExpDate,
		}
	}
}
