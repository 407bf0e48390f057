package catalog

import (
	"github.com/grocery/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
// Implementations must persist SupplyOptions as a stable ordered list.
type ProductRepository interface {
	shared.Repository[Product]
}
