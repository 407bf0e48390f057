package partner

import (
	"github.com/google/uuid"

	"github.com/grocery/backend/internal/domain/shared"
)

// Distributor supplies product batches. ProductIDs is an informational
// back-reference set; products keep the authoritative link.
type Distributor struct {
	shared.BaseEntity
	Name       string
	Phone      string
	Address    string
	ProductIDs []uuid.UUID
}

// NewDistributor creates a distributor with required fields.
func NewDistributor(name, phone, address string) (*Distributor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Distributor name is required")
	}
	return &Distributor{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Address:    address,
	}, nil
}

// DistributorRepository defines persistence operations for distributors.
type DistributorRepository interface {
	shared.Repository[Distributor]
}
