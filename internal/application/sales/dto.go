package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/sales"
)

// CartLineRequest is one checkout line.
type CartLineRequest struct {
	Product uuid.UUID       `json:"product" binding:"required"`
	Qty     decimal.Decimal `json:"qty" binding:"required"`
}

// CreateSaleRequest is the checkout payload.
type CreateSaleRequest struct {
	Products      []CartLineRequest `json:"products" binding:"required,min=1,dive"`
	CustomerID    *uuid.UUID        `json:"customerId"`
	PaymentMethod string            `json:"paymentMethod"`
}

// SaleLineResponse is one settled line in API responses.
type SaleLineResponse struct {
	ProductID    *uuid.UUID      `json:"productId"`
	Qty          decimal.Decimal `json:"qty"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	Lines         []SaleLineResponse `json:"products"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	CustomerID    *uuid.UUID         `json:"customerId"`
	PaymentMethod string             `json:"paymentMethod"`
	IsDeleted     bool               `json:"isDeleted"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// HistoryLineResponse is a sale line enriched with product details for
// the history view. Dangling product references render as "Unknown".
type HistoryLineResponse struct {
	ProductID    *uuid.UUID      `json:"productId"`
	ProductName  string          `json:"productName"`
	Unit         string          `json:"unit"`
	Qty          decimal.Decimal `json:"qty"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
}

// HistorySaleResponse is a sale enriched with customer details.
type HistorySaleResponse struct {
	ID            uuid.UUID             `json:"id"`
	Lines         []HistoryLineResponse `json:"products"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	CustomerID    *uuid.UUID            `json:"customerId"`
	CustomerName  string                `json:"customerName"`
	CustomerPhone string                `json:"customerPhone"`
	PaymentMethod string                `json:"paymentMethod"`
	IsDeleted     bool                  `json:"isDeleted"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ToggleTrashResponse reports the new trash state of a sale.
type ToggleTrashResponse struct {
	Message   string `json:"message"`
	IsDeleted bool   `json:"isDeleted"`
}

func toSaleResponse(sale *sales.Sale) *SaleResponse {
	lines := make([]SaleLineResponse, len(sale.Lines))
	for i, l := range sale.Lines {
		lines[i] = SaleLineResponse{
			ProductID:    l.ProductID,
			Qty:          l.Qty,
			SellingPrice: l.SellingPrice,
			CostPrice:    l.CostPrice,
		}
	}
	return &SaleResponse{
		ID:            sale.ID,
		Lines:         lines,
		TotalAmount:   sale.TotalAmount,
		CustomerID:    sale.CustomerID,
		PaymentMethod: sale.PaymentMethod,
		IsDeleted:     sale.Trashed(),
		CreatedAt:     sale.CreatedAt,
	}
}
