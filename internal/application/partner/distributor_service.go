package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/shared"
)

// DistributorService handles distributor directory operations.
type DistributorService struct {
	distributorRepo partner.DistributorRepository
	productRepo     catalog.ProductRepository
}

// NewDistributorService creates a new DistributorService.
func NewDistributorService(distributorRepo partner.DistributorRepository, productRepo catalog.ProductRepository) *DistributorService {
	return &DistributorService{
		distributorRepo: distributorRepo,
		productRepo:     productRepo,
	}
}

// List returns all distributors with the names of the products they
// supply resolved. Dangling product references are skipped.
func (s *DistributorService) List(ctx context.Context) ([]DistributorResponse, error) {
	distributors, err := s.distributorRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]DistributorResponse, len(distributors))
	for i := range distributors {
		d := &distributors[i]
		names := make([]string, 0, len(d.ProductIDs))
		for _, pid := range d.ProductIDs {
			if product, err := s.productRepo.FindByID(ctx, pid); err == nil {
				names = append(names, product.Name)
			}
		}
		responses[i] = DistributorResponse{
			ID:        d.ID,
			Name:      d.Name,
			Phone:     d.Phone,
			Address:   d.Address,
			Products:  names,
			CreatedAt: d.CreatedAt,
		}
	}
	return responses, nil
}

// Create registers a distributor.
func (s *DistributorService) Create(ctx context.Context, req CreateDistributorRequest) (*DistributorResponse, error) {
	distributor, err := partner.NewDistributor(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.distributorRepo.Save(ctx, distributor); err != nil {
		return nil, err
	}
	return &DistributorResponse{
		ID:        distributor.ID,
		Name:      distributor.Name,
		Phone:     distributor.Phone,
		Address:   distributor.Address,
		Products:  []string{},
		CreatedAt: distributor.CreatedAt,
	}, nil
}

// Delete removes a distributor. Supply options referencing it keep the
// id and render the distributor as "Unknown" afterwards.
func (s *DistributorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.distributorRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Distributor not found")
		}
		return err
	}
	return s.distributorRepo.Delete(ctx, id)
}
