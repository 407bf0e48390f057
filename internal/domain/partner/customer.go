package partner

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/shared"
)

// Customer is a registered buyer. Loyalty points only grow through
// sale settlement; direct edits go through SetLoyaltyPoints.
type Customer struct {
	shared.BaseEntity
	Name          string
	Phone         string // unique
	Address       string
	LoyaltyPoints int
}

// NewCustomer creates a customer with required fields.
func NewCustomer(name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer phone is required")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Address:    address,
	}, nil
}

// AccrueLoyalty grants one point per 100 currency units of sale total,
// rounded down.
func (c *Customer) AccrueLoyalty(saleTotal decimal.Decimal) int {
	earned := int(saleTotal.Div(decimal.NewFromInt(100)).IntPart())
	if earned > 0 {
		c.LoyaltyPoints += earned
		c.Touch()
	}
	return earned
}

// SetLoyaltyPoints overrides the balance, used by direct customer edits.
func (c *Customer) SetLoyaltyPoints(points int) error {
	if points < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Loyalty points cannot be negative")
	}
	c.LoyaltyPoints = points
	c.Touch()
	return nil
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
}
