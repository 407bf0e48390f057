package sales

import (
	"context"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories a
// settlement touches. Repository operations performed inside Execute
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn
	// rolls the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to one
// transaction. All three share the same underlying transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	SaleRepo() sales.SaleRepository
	CustomerRepo() partner.CustomerRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests with mock repositories.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	saleRepo     sales.SaleRepository
	customerRepo partner.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	saleRepo sales.SaleRepository,
	customerRepo partner.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// Execute runs fn directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the wrapped product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// SaleRepo returns the wrapped sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// CustomerRepo returns the wrapped customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }
