package models

import (
	"github.com/grocery/backend/internal/domain/settings"
)

// StoreSettingsModel is the persistence model for the settings singleton
type StoreSettingsModel struct {
	BaseModel
	StoreName      string `gorm:"type:varchar(200);not null"`
	Tagline        string `gorm:"type:varchar(200)"`
	Address        string `gorm:"type:text"`
	Phone          string `gorm:"type:varchar(20)"`
	Email          string `gorm:"type:varchar(200)"`
	Website        string `gorm:"type:varchar(200)"`
	GSTIN          string `gorm:"type:varchar(50)"`
	FooterMessage  string `gorm:"type:varchar(500)"`
	WhatsappHeader string `gorm:"type:varchar(500)"`
	WhatsappFooter string `gorm:"type:varchar(500)"`
	BillFormat     string `gorm:"type:varchar(20);not null;default:'A4'"`
}

// TableName returns the table name for GORM
func (StoreSettingsModel) TableName() string {
	return "store_settings"
}

// ToDomain converts StoreSettingsModel to domain StoreSettings
func (m *StoreSettingsModel) ToDomain() *settings.StoreSettings {
	return &settings.StoreSettings{
		BaseEntity:     m.BaseModel.ToDomain(),
		StoreName:      m.StoreName,
		Tagline:        m.Tagline,
		Address:        m.Address,
		Phone:          m.Phone,
		Email:          m.Email,
		Website:        m.Website,
		GSTIN:          m.GSTIN,
		FooterMessage:  m.FooterMessage,
		WhatsappHeader: m.WhatsappHeader,
		WhatsappFooter: m.WhatsappFooter,
		BillFormat:     settings.BillFormat(m.BillFormat),
	}
}

// FromDomain populates StoreSettingsModel from domain StoreSettings
func (m *StoreSettingsModel) FromDomain(s *settings.StoreSettings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.StoreName = s.StoreName
	m.Tagline = s.Tagline
	m.Address = s.Address
	m.Phone = s.Phone
	m.Email = s.Email
	m.Website = s.Website
	m.GSTIN = s.GSTIN
	m.FooterMessage = s.FooterMessage
	m.WhatsappHeader = s.WhatsappHeader
	m.WhatsappFooter = s.WhatsappFooter
	m.BillFormat = string(s.BillFormat)
}
