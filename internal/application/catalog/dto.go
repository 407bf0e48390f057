package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/catalog"
)

// SupplyOptionPayload is one batch entry as submitted by the client.
// The whole supply options payload arrives as a JSON string alongside
// the image upload form, so it is parsed by the service rather than by
// request binding.
type SupplyOptionPayload struct {
	DistributorID *uuid.UUID      `json:"distributor"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	Stock         decimal.Decimal `json:"stock"`
	MfgDate       *time.Time      `json:"mfgDate"`
	ExpDate       *time.Time      `json:"expDate"`
}

// CreateProductRequest creates a product. SupplyOptions is the raw
// JSON array submitted with the form; empty means no batches yet.
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Image         string           `json:"image" binding:"required"`
	Unit          string           `json:"unit" binding:"max=20"`
	Category      string           `json:"category" binding:"max=100"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice" binding:"required"`
	Qty           *decimal.Decimal `json:"qty"`
	SupplyOptions string           `json:"supplyOptions"`
}

// UpdateProductRequest updates a product. Nil fields keep old values.
// When SupplyOptions is present the ledger is replaced wholesale and
// the total quantity is recomputed from it; any Qty field is ignored.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Image         *string          `json:"image"`
	Unit          *string          `json:"unit" binding:"omitempty,max=20"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	Qty           *decimal.Decimal `json:"qty"`
	SupplyOptions *string          `json:"supplyOptions"`
}

// SupplyOptionResponse is one batch in API responses, enriched with
// the distributor name when the reference still resolves.
type SupplyOptionResponse struct {
	ID              uuid.UUID       `json:"id"`
	DistributorID   *uuid.UUID      `json:"distributor"`
	DistributorName string          `json:"distributorName"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	Stock           decimal.Decimal `json:"stock"`
	MfgDate         *time.Time      `json:"mfgDate"`
	ExpDate         *time.Time      `json:"expDate"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Image         string                 `json:"image"`
	Unit          string                 `json:"unit"`
	Category      string                 `json:"category"`
	SellingPrice  decimal.Decimal        `json:"sellingPrice"`
	Qty           decimal.Decimal        `json:"qty"`
	SupplyOptions []SupplyOptionResponse `json:"supplyOptions"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func toDomainOptions(payloads []SupplyOptionPayload) []catalog.SupplyOption {
	options := make([]catalog.SupplyOption, len(payloads))
	for i, p := range payloads {
		options[i] = catalog.SupplyOption{
			ID:            uuid.New(),
			DistributorID: p.DistributorID,
			CostPrice:     p.CostPrice,
			Stock:         p.Stock,
			MfgDate:       p.MfgDate,
			ExpDate:       p.ExpDate,
		}
	}
	return options
}
