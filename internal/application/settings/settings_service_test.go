package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grocery/backend/internal/domain/settings"
	"github.com/grocery/backend/internal/domain/shared"
)

// MockSettingsRepository is a mock implementation of settings.Repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (*settings.StoreSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.StoreSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *settings.StoreSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestGetCreatesDefaultsOnFirstRead(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)

	repo.On("Load", mock.Anything).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*settings.StoreSettings")).Return(nil)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "My Grocery Store", resp.StoreName)
	assert.Equal(t, string(settings.BillFormatA4), resp.BillFormat)
	repo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*settings.StoreSettings"))
}

func TestGetReturnsExistingRecord(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)
	record := settings.DefaultStoreSettings()
	record.StoreName = "Corner Mart"

	repo.On("Load", mock.Anything).Return(record, nil)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Corner Mart", resp.StoreName)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)
	record := settings.DefaultStoreSettings()
	record.Phone = "044-1234567"

	repo.On("Load", mock.Anything).Return(record, nil)
	repo.On("Save", mock.Anything, record).Return(nil)

	resp, err := svc.Update(context.Background(), UpdateSettingsRequest{
		StoreName:  strPtr("Corner Mart"),
		BillFormat: strPtr("Thermal"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Corner Mart", resp.StoreName)
	assert.Equal(t, "Thermal", resp.BillFormat)
	assert.Equal(t, "044-1234567", resp.Phone)
}

func TestUpdateRejectsUnknownBillFormat(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo)
	repo.On("Load", mock.Anything).Return(settings.DefaultStoreSettings(), nil)

	_, err := svc.Update(context.Background(), UpdateSettingsRequest{
		BillFormat: strPtr("Letter"),
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
