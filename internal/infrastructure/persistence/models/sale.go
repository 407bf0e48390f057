package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/sales"
)

// SaleModel is the persistence model for sales. IsDeleted is nullable
// so records written before the trash flag existed read back as NULL
// and count as not deleted.
type SaleModel struct {
	BaseModel
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod string          `gorm:"type:varchar(50);not null;default:'Cash'"`
	IsDeleted     *bool           `gorm:"index"`
	Lines         []SaleLineModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleLineModel is one settled line row. Position preserves the order
// the cart lines were submitted in.
type SaleLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    *uuid.UUID      `gorm:"type:uuid;index"`
	Qty          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts SaleModel to a domain Sale
func (m *SaleModel) ToDomain() *sales.Sale {
	lines := make([]sales.SaleLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = sales.SaleLine{
			ProductID:    l.ProductID,
			Qty:          l.Qty,
			SellingPrice: l.SellingPrice,
			CostPrice:    l.CostPrice,
		}
	}
	return &sales.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		Lines:         lines,
		TotalAmount:   m.TotalAmount,
		CustomerID:    m.CustomerID,
		PaymentMethod: m.PaymentMethod,
		IsDeleted:     m.IsDeleted,
	}
}

// FromDomain populates SaleModel from a domain Sale
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.TotalAmount = s.TotalAmount
	m.CustomerID = s.CustomerID
	m.PaymentMethod = s.PaymentMethod
	m.IsDeleted = s.IsDeleted
	m.Lines = make([]SaleLineModel, len(s.Lines))
	for i, l := range s.Lines {
		m.Lines[i] = SaleLineModel{
			ID:           uuid.New(),
			SaleID:       s.ID,
			Position:     i,
			ProductID:    l.ProductID,
			Qty:          l.Qty,
			SellingPrice: l.SellingPrice,
			CostPrice:    l.CostPrice,
		}
	}
}
