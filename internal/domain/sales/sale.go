package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/shared"
)

// PaymentMethodDefault is used when a checkout omits the payment method.
const PaymentMethodDefault = "Cash"

// SaleLine is a snapshot of one sold cart line. SellingPrice and
// CostPrice are frozen at settlement time and never recomputed from
// the current product state.
type SaleLine struct {
	ProductID    *uuid.UUID // weak reference, may dangle after product deletion
	Qty          decimal.Decimal
	SellingPrice decimal.Decimal
	CostPrice    decimal.Decimal // weighted-average unit cost of the batches consumed
}

// Profit returns (sellingPrice - costPrice) * qty for this line.
func (l SaleLine) Profit() decimal.Decimal {
	return l.SellingPrice.Sub(l.CostPrice).Mul(l.Qty)
}

// Sale is an immutable settlement record. Only the trash flag may
// change after creation. IsDeleted is a pointer so records written
// before the flag existed read back as nil and count as not deleted.
type Sale struct {
	shared.BaseEntity
	Lines         []SaleLine
	TotalAmount   decimal.Decimal
	CustomerID    *uuid.UUID // nil for guest sales
	PaymentMethod string
	IsDeleted     *bool
}

// NewSale builds a sale from settled lines. The total is the sum of
// sellingPrice times qty across lines.
func NewSale(lines []SaleLine, customerID *uuid.UUID, paymentMethod string) (*Sale, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale must contain at least one line")
	}
	if paymentMethod == "" {
		paymentMethod = PaymentMethodDefault
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.SellingPrice.Mul(line.Qty))
	}
	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		Lines:         lines,
		TotalAmount:   total,
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
	}, nil
}

// Profit returns the sale's total profit across all lines.
func (s *Sale) Profit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(line.Profit())
	}
	return total
}

// Trashed reports the soft-delete state, treating an absent flag as
// not deleted.
func (s *Sale) Trashed() bool {
	return s.IsDeleted != nil && *s.IsDeleted
}

// ToggleTrash flips the soft-delete flag and returns the new state.
// It does not restock products or revert loyalty points.
func (s *Sale) ToggleTrash() bool {
	next := !s.Trashed()
	s.IsDeleted = &next
	s.Touch()
	return next
}
