package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/shared"
)

// CustomerService handles customer directory operations.
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = toCustomerResponse(&customers[i])
	}
	return responses, nil
}

// Create registers a customer. Phone numbers are unique.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	existing, err := s.customerRepo.FindByPhone(ctx, req.Phone)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
	}

	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// Update applies a partial update, including direct loyalty edits.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	if req.Phone != nil && *req.Phone != customer.Phone {
		existing, err := s.customerRepo.FindByPhone(ctx, *req.Phone)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
		customer.Phone = *req.Phone
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.LoyaltyPoints != nil {
		if err := customer.SetLoyaltyPoints(*req.LoyaltyPoints); err != nil {
			return nil, err
		}
	}
	customer.Touch()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer. Sales keep their weak reference and
// degrade to a placeholder in the history view.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
