package settings

import (
	"context"
	"errors"

	"github.com/grocery/backend/internal/domain/settings"
	"github.com/grocery/backend/internal/domain/shared"
)

// UpdateSettingsRequest applies a partial settings update. Nil fields
// keep their stored values.
type UpdateSettingsRequest struct {
	StoreName      *string `json:"storeName" binding:"omitempty,min=1,max=200"`
	Tagline        *string `json:"tagline" binding:"omitempty,max=200"`
	Address        *string `json:"address" binding:"omitempty,max=500"`
	Phone          *string `json:"phone" binding:"omitempty,max=20"`
	Email          *string `json:"email" binding:"omitempty,max=200"`
	Website        *string `json:"website" binding:"omitempty,max=200"`
	GSTIN          *string `json:"gstin" binding:"omitempty,max=50"`
	FooterMessage  *string `json:"footerMessage" binding:"omitempty,max=500"`
	WhatsappHeader *string `json:"whatsappHeader" binding:"omitempty,max=500"`
	WhatsappFooter *string `json:"whatsappFooter" binding:"omitempty,max=500"`
	BillFormat     *string `json:"billFormat"`
}

// SettingsResponse represents store settings in API responses.
type SettingsResponse struct {
	StoreName      string `json:"storeName"`
	Tagline        string `json:"tagline"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Website        string `json:"website"`
	GSTIN          string `json:"gstin"`
	FooterMessage  string `json:"footerMessage"`
	WhatsappHeader string `json:"whatsappHeader"`
	WhatsappFooter string `json:"whatsappFooter"`
	BillFormat     string `json:"billFormat"`
}

// SettingsService manages the store configuration record. The record
// is created with defaults the first time it is read, so callers never
// see a missing-settings state.
type SettingsService struct {
	repo settings.Repository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo settings.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the store settings, creating the default record on first read.
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	record, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(record), nil
}

// Update applies a partial update to the settings record.
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	record, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.BillFormat != nil {
		format := settings.BillFormat(*req.BillFormat)
		if !settings.ValidBillFormat(format) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Bill format must be A4 or Thermal")
		}
		record.BillFormat = format
	}
	applyIfSet(&record.StoreName, req.StoreName)
	applyIfSet(&record.Tagline, req.Tagline)
	applyIfSet(&record.Address, req.Address)
	applyIfSet(&record.Phone, req.Phone)
	applyIfSet(&record.Email, req.Email)
	applyIfSet(&record.Website, req.Website)
	applyIfSet(&record.GSTIN, req.GSTIN)
	applyIfSet(&record.FooterMessage, req.FooterMessage)
	applyIfSet(&record.WhatsappHeader, req.WhatsappHeader)
	applyIfSet(&record.WhatsappFooter, req.WhatsappFooter)
	record.Touch()

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return toResponse(record), nil
}

func (s *SettingsService) loadOrCreate(ctx context.Context) (*settings.StoreSettings, error) {
	record, err := s.repo.Load(ctx)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	record = settings.DefaultStoreSettings()
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func toResponse(record *settings.StoreSettings) *SettingsResponse {
	return &SettingsResponse{
		StoreName:      record.StoreName,
		Tagline:        record.Tagline,
		Address:        record.Address,
		Phone:          record.Phone,
		Email:          record.Email,
		Website:        record.Website,
		GSTIN:          record.GSTIN,
		FooterMessage:  record.FooterMessage,
		WhatsappHeader: record.WhatsappHeader,
		WhatsappFooter: record.WhatsappFooter,
		BillFormat:     string(record.BillFormat),
	}
}
