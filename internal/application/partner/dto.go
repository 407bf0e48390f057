package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/grocery/backend/internal/domain/partner"
)

// CreateCustomerRequest creates a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"required,min=4,max=20"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest applies a partial customer update. Loyalty
// points may be edited directly here; settlement is the only other
// writer.
type UpdateCustomerRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone         *string `json:"phone" binding:"omitempty,min=4,max=20"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	LoyaltyPoints *int    `json:"loyaltyPoints"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateDistributorRequest creates a distributor.
type CreateDistributorRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address" binding:"max=500"`
}

// DistributorResponse represents a distributor in API responses, with
// supplied product names resolved for display.
type DistributorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Products  []string  `json:"products"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Address:       c.Address,
		LoyaltyPoints: c.LoyaltyPoints,
		CreatedAt:     c.CreatedAt,
	}
}
