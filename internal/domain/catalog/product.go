package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/shared"
)

// Product represents a sellable item with its supply batch ledger.
// SupplyOptions is ordered: batches are consumed front to back, so the
// list order is the FIFO queue.
type Product struct {
	shared.BaseEntity
	Name          string
	Image         string
	Unit          string // unit of measure, e.g. "pcs", "kg"
	Category      string
	SellingPrice  decimal.Decimal
	Qty           decimal.Decimal // cached total, kept equal to the sum of batch stocks
	SupplyOptions []SupplyOption
}

// SupplyOption is one priced stock batch from a distributor.
// It has no identity outside its owning product.
type SupplyOption struct {
	ID            uuid.UUID
	DistributorID *uuid.UUID // weak reference, may dangle after distributor deletion
	CostPrice     decimal.Decimal
	Stock         decimal.Decimal
	MfgDate       *time.Time
	ExpDate       *time.Time
}

// NewProduct creates a product. When supply options are present the
// total quantity is derived from them, otherwise the explicit qty is used.
func NewProduct(name, image, unit, category string, sellingPrice, qty decimal.Decimal, options []SupplyOption) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Selling price cannot be negative")
	}
	if unit == "" {
		unit = "pcs"
	}
	p := &Product{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		Image:         image,
		Unit:          unit,
		Category:      category,
		SellingPrice:  sellingPrice,
		Qty:           qty,
		SupplyOptions: options,
	}
	if len(options) > 0 {
		p.RecalculateQty()
	}
	return p, nil
}

// TotalBatchStock returns the sum of stock across all supply options.
func (p *Product) TotalBatchStock() decimal.Decimal {
	total := decimal.Zero
	for _, opt := range p.SupplyOptions {
		total = total.Add(opt.Stock)
	}
	return total
}

// RecalculateQty resets the cached total quantity from the batch ledger.
// This is the reconciliation point after a wholesale supply option
// replacement: a separately supplied qty is never trusted when the
// ledger is present.
func (p *Product) RecalculateQty() {
	p.Qty = p.TotalBatchStock()
	p.Touch()
}

// ReplaceSupplyOptions swaps the whole batch ledger and recomputes the
// cached total quantity.
func (p *Product) ReplaceSupplyOptions(options []SupplyOption) {
	p.SupplyOptions = options
	p.RecalculateQty()
}

// HasSufficientStock reports whether the cached total covers qty.
func (p *Product) HasSufficientStock(qty decimal.Decimal) bool {
	return p.Qty.GreaterThanOrEqual(qty)
}

// Consume deducts qty from the batch ledger in list order and returns
// the weighted-average unit cost of the units actually taken.
//
// Each batch with stock yields min(batch stock, remaining) units at its
// own cost price. If the ledger under-counts the cached total and some
// quantity remains after the walk, the shortfall is costed at the first
// batch's price, or zero when the ledger is empty. The cached total
// quantity is decremented by qty.
func (p *Product) Consume(qty decimal.Decimal) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Quantity must be greater than zero")
	}
	if !p.HasSufficientStock(qty) {
		return decimal.Zero, shared.NewDomainErrorf("INSUFFICIENT_STOCK",
			"Insufficient stock for %s", p.Name)
	}

	remaining := qty
	accumulated := decimal.Zero
	for i := range p.SupplyOptions {
		if !remaining.IsPositive() {
			break
		}
		opt := &p.SupplyOptions[i]
		if !opt.Stock.IsPositive() {
			continue
		}
		take := decimal.Min(opt.Stock, remaining)
		opt.Stock = opt.Stock.Sub(take)
		remaining = remaining.Sub(take)
		accumulated = accumulated.Add(take.Mul(opt.CostPrice))
	}

	// Ledger under-counted the cached total. Cost the shortfall at the
	// first batch's price so the sale still settles.
	if remaining.IsPositive() {
		fallback := decimal.Zero
		if len(p.SupplyOptions) > 0 {
			fallback = p.SupplyOptions[0].CostPrice
		}
		accumulated = accumulated.Add(remaining.Mul(fallback))
	}

	p.Qty = p.Qty.Sub(qty)
	p.Touch()
	return accumulated.Div(qty), nil
}
