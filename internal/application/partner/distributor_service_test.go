package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/shared"
)

// MockDistributorRepository is a mock implementation of partner.DistributorRepository
type MockDistributorRepository struct {
	mock.Mock
}

func (m *MockDistributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Distributor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) Save(ctx context.Context, distributor *partner.Distributor) error {
	args := m.Called(ctx, distributor)
	return args.Error(0)
}

func (m *MockDistributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestDistributorListResolvesProductNames(t *testing.T) {
	distributorRepo := new(MockDistributorRepository)
	productRepo := new(MockProductRepository)
	svc := NewDistributorService(distributorRepo, productRepo)

	product, err := catalog.NewProduct("Rice 5kg", "/uploads/rice.jpg", "pcs", "", decimal.NewFromInt(120), decimal.Zero, nil)
	require.NoError(t, err)
	gone := uuid.New()

	distributor, err := partner.NewDistributor("FreshFarm", "9811111111", "")
	require.NoError(t, err)
	distributor.ProductIDs = []uuid.UUID{product.ID, gone}

	distributorRepo.On("FindAll", mock.Anything, mock.Anything).Return([]partner.Distributor{*distributor}, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindByID", mock.Anything, gone).Return(nil, shared.ErrNotFound)

	result, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, []string{"Rice 5kg"}, result[0].Products)
}

func TestCreateDistributorRequiresName(t *testing.T) {
	svc := NewDistributorService(new(MockDistributorRepository), new(MockProductRepository))
	_, err := svc.Create(context.Background(), CreateDistributorRequest{})
	require.Error(t, err)
}

func TestDeleteUnknownDistributor(t *testing.T) {
	distributorRepo := new(MockDistributorRepository)
	svc := NewDistributorService(distributorRepo, new(MockProductRepository))
	id := uuid.New()

	distributorRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := svc.Delete(context.Background(), id)
	require.Error(t, err)
	distributorRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
