package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/shared"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(i int) *int { return &i }

func TestCreateCustomer(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	repo.On("FindByPhone", mock.Anything, "9000000001").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name:  "Asha",
		Phone: "9000000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", resp.Name)
	assert.Zero(t, resp.LoyaltyPoints)
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)
	existing, err := partner.NewCustomer("Asha", "9000000001", "")
	require.NoError(t, err)

	repo.On("FindByPhone", mock.Anything, "9000000001").Return(existing, nil)

	_, err = svc.Create(context.Background(), CreateCustomerRequest{
		Name:  "Someone Else",
		Phone: "9000000001",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateCustomerLoyaltyEdit(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)
	customer, err := partner.NewCustomer("Asha", "9000000001", "")
	require.NoError(t, err)
	customer.LoyaltyPoints = 7

	repo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	resp, err := svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{
		LoyaltyPoints: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.LoyaltyPoints)
}

func TestUpdateCustomerUnknown(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Update(context.Background(), id, UpdateCustomerRequest{})
	require.Error(t, err)
}
