package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/sales"
	"github.com/grocery/backend/internal/domain/shared"
)

// historyLimit caps the operational history view.
const historyLimit = 100

// unknownLabel renders dangling product and customer references.
const unknownLabel = "Unknown"

// HistoryQuery narrows the history view. Date is an ISO calendar day
// ("2006-01-02") interpreted in local time; empty means all days.
type HistoryQuery struct {
	Date  string
	Trash bool
}

// HistoryService serves the operational sale history view: filtered
// listing with read-time enrichment, trash toggling and hard deletion.
type HistoryService struct {
	saleRepo     sales.SaleRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(
	saleRepo sales.SaleRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
) *HistoryService {
	return &HistoryService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// Query returns sales matching the filter, newest first, capped at 100,
// with customer and product details resolved. References that no longer
// resolve degrade to a placeholder instead of failing the whole view.
func (s *HistoryService) Query(ctx context.Context, q HistoryQuery) ([]HistorySaleResponse, error) {
	filter := sales.HistoryFilter{Trash: q.Trash, Limit: historyLimit}
	if q.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", q.Date, time.Local)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid date filter")
		}
		filter.Day = &day
	}

	found, err := s.saleRepo.FindHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]HistorySaleResponse, 0, len(found))
	productCache := map[uuid.UUID]*catalog.Product{}
	customerCache := map[uuid.UUID]*partner.Customer{}

	for i := range found {
		sale := &found[i]
		resp := HistorySaleResponse{
			ID:            sale.ID,
			TotalAmount:   sale.TotalAmount,
			CustomerID:    sale.CustomerID,
			PaymentMethod: sale.PaymentMethod,
			IsDeleted:     sale.Trashed(),
			CreatedAt:     sale.CreatedAt,
		}

		if sale.CustomerID != nil {
			if customer := s.resolveCustomer(ctx, customerCache, *sale.CustomerID); customer != nil {
				resp.CustomerName = customer.Name
				resp.CustomerPhone = customer.Phone
			} else {
				resp.CustomerName = unknownLabel
			}
		}

		resp.Lines = make([]HistoryLineResponse, len(sale.Lines))
		for j, line := range sale.Lines {
			enriched := HistoryLineResponse{
				ProductID:    line.ProductID,
				ProductName:  unknownLabel,
				Qty:          line.Qty,
				SellingPrice: line.SellingPrice,
				CostPrice:    line.CostPrice,
			}
			if line.ProductID != nil {
				if product := s.resolveProduct(ctx, productCache, *line.ProductID); product != nil {
					enriched.ProductName = product.Name
					enriched.Unit = product.Unit
				}
			}
			resp.Lines[j] = enriched
		}

		responses = append(responses, resp)
	}
	return responses, nil
}

// ToggleTrash flips the soft-delete flag on one sale and returns the
// new state. Stock and loyalty points are untouched.
func (s *HistoryService) ToggleTrash(ctx context.Context, id uuid.UUID) (*ToggleTrashResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
		}
		return nil, err
	}

	deleted := sale.ToggleTrash()
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	msg := "Sale restored"
	if deleted {
		msg = "Sale moved to trash"
	}
	return &ToggleTrashResponse{Message: msg, IsDeleted: deleted}, nil
}

// Delete removes a sale permanently. It does not restock products or
// revert loyalty points.
func (s *HistoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.saleRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Sale not found")
		}
		return err
	}
	return s.saleRepo.Delete(ctx, id)
}

func (s *HistoryService) resolveCustomer(ctx context.Context, cache map[uuid.UUID]*partner.Customer, id uuid.UUID) *partner.Customer {
	if c, ok := cache[id]; ok {
		return c
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		customer = nil
	}
	cache[id] = customer
	return customer
}

func (s *HistoryService) resolveProduct(ctx context.Context, cache map[uuid.UUID]*catalog.Product, id uuid.UUID) *catalog.Product {
	if p, ok := cache[id]; ok {
		return p
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		product = nil
	}
	cache[id] = product
	return product
}
