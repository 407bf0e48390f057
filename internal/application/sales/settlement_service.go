package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/sales"
	"github.com/grocery/backend/internal/domain/shared"
)

// SettlementService settles shopping carts into immutable sale records.
// Every settlement runs in one transaction: batch consumption, sale
// creation and loyalty accrual commit or roll back together.
type SettlementService struct {
	scope TransactionScope
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(scope TransactionScope) *SettlementService {
	return &SettlementService{scope: scope}
}

// Settle validates the whole cart, consumes supply batches in ledger
// order, persists the sale with per-line price and cost snapshots, and
// accrues loyalty points for a known customer.
//
// All lines are validated before any product is mutated, so a failing
// line never leaves earlier lines half-applied.
func (s *SettlementService) Settle(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	var result *SaleResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := s.loadCart(ctx, repos.ProductRepo(), req.Products)
		if err != nil {
			return err
		}

		var customer *partner.Customer
		if req.CustomerID != nil {
			customer, err = repos.CustomerRepo().FindByID(ctx, *req.CustomerID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("NOT_FOUND", "Customer not found")
				}
				return err
			}
		}

		if err := validateCart(req.Products, products); err != nil {
			return err
		}

		lines := make([]sales.SaleLine, 0, len(req.Products))
		for _, cartLine := range req.Products {
			product := products[cartLine.Product]
			unitCost, err := product.Consume(cartLine.Qty)
			if err != nil {
				return err
			}
			productID := product.ID
			lines = append(lines, sales.SaleLine{
				ProductID:    &productID,
				Qty:          cartLine.Qty,
				SellingPrice: product.SellingPrice,
				CostPrice:    unitCost,
			})
		}

		for _, product := range products {
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}

		sale, err := sales.NewSale(lines, req.CustomerID, req.PaymentMethod)
		if err != nil {
			return err
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		if customer != nil {
			customer.AccrueLoyalty(sale.TotalAmount)
			if err := repos.CustomerRepo().Save(ctx, customer); err != nil {
				return err
			}
		}

		result = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadCart resolves each distinct product once, so repeated lines for
// the same product share one in-memory instance and one final save.
func (s *SettlementService) loadCart(
	ctx context.Context,
	repo catalog.ProductRepository,
	lines []CartLineRequest,
) (map[uuid.UUID]*catalog.Product, error) {
	products := make(map[uuid.UUID]*catalog.Product, len(lines))
	for _, line := range lines {
		if _, ok := products[line.Product]; ok {
			continue
		}
		product, err := repo.FindByID(ctx, line.Product)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
			}
			return nil, err
		}
		products[line.Product] = product
	}
	return products, nil
}

// validateCart checks every line before any stock is touched. Repeated
// lines for one product are validated against their combined quantity.
func validateCart(lines []CartLineRequest, products map[uuid.UUID]*catalog.Product) error {
	requested := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, line := range lines {
		if !line.Qty.IsPositive() {
			return shared.NewDomainError("INVALID_INPUT", "Quantity must be greater than zero")
		}
		requested[line.Product] = requested[line.Product].Add(line.Qty)
	}
	for id, qty := range requested {
		product := products[id]
		if !product.HasSufficientStock(qty) {
			return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
				"Insufficient stock for %s", product.Name)
		}
	}
	return nil
}
