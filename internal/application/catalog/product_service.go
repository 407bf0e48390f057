package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grocery/backend/internal/domain/catalog"
	"github.com/grocery/backend/internal/domain/partner"
	"github.com/grocery/backend/internal/domain/shared"
)

// ProductService handles product catalog operations.
type ProductService struct {
	productRepo     catalog.ProductRepository
	distributorRepo partner.DistributorRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo catalog.ProductRepository, distributorRepo partner.DistributorRepository) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		distributorRepo: distributorRepo,
	}
}

// List returns all products with distributor names resolved on their
// supply options. Dangling distributor references render as "Unknown".
// A non-empty search narrows the result to name substring matches.
func (s *ProductService) List(ctx context.Context, search string) ([]ProductResponse, error) {
	filter := shared.DefaultFilter()
	filter.Search = search
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := map[uuid.UUID]string{}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = s.toResponse(ctx, &products[i], names)
	}
	return responses, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	resp := s.toResponse(ctx, product, map[uuid.UUID]string{})
	return &resp, nil
}

// Create creates a product. When the supply options payload is present
// the total quantity is derived from the batch stocks; an unparsable
// payload rejects the whole request with nothing persisted.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	options, err := parseSupplyOptions(req.SupplyOptions)
	if err != nil {
		return nil, err
	}

	qty := decimalOrZero(req.Qty)
	product, err := catalog.NewProduct(req.Name, req.Image, req.Unit, req.Category, req.SellingPrice, qty, options)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.linkDistributors(ctx, product)

	resp := s.toResponse(ctx, product, map[uuid.UUID]string{})
	return &resp, nil
}

// Update applies a partial update. A replaced supply option ledger is
// the source of truth for quantity; a separately supplied qty is only
// honored when no ledger accompanies it.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	if req.SupplyOptions != nil {
		options, err := parseSupplyOptions(*req.SupplyOptions)
		if err != nil {
			return nil, err
		}
		product.ReplaceSupplyOptions(options)
	} else if req.Qty != nil {
		product.Qty = *req.Qty
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Selling price cannot be negative")
		}
		product.SellingPrice = *req.SellingPrice
	}
	product.Touch()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if req.SupplyOptions != nil {
		s.linkDistributors(ctx, product)
	}

	resp := s.toResponse(ctx, product, map[uuid.UUID]string{})
	return &resp, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// linkDistributors maintains the informational back-reference from
// each supplying distributor to this product. Missing distributors are
// skipped, the link set is best effort.
func (s *ProductService) linkDistributors(ctx context.Context, product *catalog.Product) {
	seen := map[uuid.UUID]bool{}
	for _, opt := range product.SupplyOptions {
		if opt.DistributorID == nil || seen[*opt.DistributorID] {
			continue
		}
		seen[*opt.DistributorID] = true

		distributor, err := s.distributorRepo.FindByID(ctx, *opt.DistributorID)
		if err != nil {
			continue
		}
		linked := false
		for _, pid := range distributor.ProductIDs {
			if pid == product.ID {
				linked = true
				break
			}
		}
		if !linked {
			distributor.ProductIDs = append(distributor.ProductIDs, product.ID)
			_ = s.distributorRepo.Save(ctx, distributor)
		}
	}
}

func (s *ProductService) toResponse(ctx context.Context, product *catalog.Product, names map[uuid.UUID]string) ProductResponse {
	options := make([]SupplyOptionResponse, len(product.SupplyOptions))
	for i, opt := range product.SupplyOptions {
		name := "Unknown"
		if opt.DistributorID != nil {
			if cached, ok := names[*opt.DistributorID]; ok {
				name = cached
			} else if distributor, err := s.distributorRepo.FindByID(ctx, *opt.DistributorID); err == nil {
				name = distributor.Name
				names[*opt.DistributorID] = name
			} else {
				names[*opt.DistributorID] = name
			}
		}
		options[i] = SupplyOptionResponse{
			ID:              opt.ID,
			DistributorID:   opt.DistributorID,
			DistributorName: name,
			CostPrice:       opt.CostPrice,
			Stock:           opt.Stock,
			MfgDate:         opt.MfgDate,
			ExpDate:         opt.ExpDate,
		}
	}
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Image:         product.Image,
		Unit:          product.Unit,
		Category:      product.Category,
		SellingPrice:  product.SellingPrice,
		Qty:           product.Qty,
		SupplyOptions: options,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func parseSupplyOptions(raw string) ([]catalog.SupplyOption, error) {
	if raw == "" {
		return nil, nil
	}
	var payloads []SupplyOptionPayload
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid supply options payload")
	}
	for _, p := range payloads {
		if p.Stock.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Supply option stock cannot be negative")
		}
		if p.CostPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Supply option cost price cannot be negative")
		}
	}
	return toDomainOptions(payloads), nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
