package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/grocery/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for customers
type CustomerModel struct {
	BaseModel
	Name          string `gorm:"type:varchar(200);not null"`
	Phone         string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Address       string `gorm:"type:text"`
	LoyaltyPoints int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts CustomerModel to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		Phone:         m.Phone,
		Address:       m.Address,
		LoyaltyPoints: m.LoyaltyPoints,
	}
}

// FromDomain populates CustomerModel from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Address = c.Address
	m.LoyaltyPoints = c.LoyaltyPoints
}

// DistributorModel is the persistence model for distributors.
// ProductIDs is the informational back-reference set, stored as a JSON
// array of product ids.
type DistributorModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(200);not null"`
	Phone      string `gorm:"type:varchar(20)"`
	Address    string `gorm:"type:text"`
	ProductIDs string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DistributorModel) TableName() string {
	return "distributors"
}

// ToDomain converts DistributorModel to a domain Distributor
func (m *DistributorModel) ToDomain() *partner.Distributor {
	var ids []uuid.UUID
	if m.ProductIDs != "" {
		// A corrupt column degrades to an empty set rather than failing reads.
		_ = json.Unmarshal([]byte(m.ProductIDs), &ids)
	}
	return &partner.Distributor{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		ProductIDs: ids,
	}
}

// FromDomain populates DistributorModel from a domain Distributor
func (m *DistributorModel) FromDomain(d *partner.Distributor) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Name = d.Name
	m.Phone = d.Phone
	m.Address = d.Address
	if len(d.ProductIDs) == 0 {
		m.ProductIDs = "[]"
		return
	}
	raw, err := json.Marshal(d.ProductIDs)
	if err != nil {
		m.ProductIDs = "[]"
		return
	}
	m.ProductIDs = string(raw)
}
