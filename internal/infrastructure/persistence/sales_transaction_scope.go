package persistence

import (
	"context"

	"gorm.io/gorm"

	appsales "github.com/grocery/backend/internal/application/sales"
	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/sales"
)

// GormSaleTransactionScope implements the settlement TransactionScope
// using GORM transactions. Product stock mutation, sale creation and
// loyalty update commit or roll back together.
type GormSaleTransactionScope struct {
	db *gorm.DB
}

// NewGormSaleTransactionScope creates a new GormSaleTransactionScope
func NewGormSaleTransactionScope(db *gorm.DB) *GormSaleTransactionScope {
	return &GormSaleTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormSaleTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSaleTransactionalRepositories{tx: tx})
	})
}

type gormSaleTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormSaleTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// SaleRepo returns the sale repository scoped to the current transaction
func (r *gormSaleTransactionalRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction
func (r *gormSaleTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Ensure GormSaleTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormSaleTransactionScope)(nil)

// Ensure gormSaleTransactionalRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormSaleTransactionalRepositories)(nil)
