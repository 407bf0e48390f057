package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HistoryFilter narrows the operational history view.
// Day, when set, restricts results to that calendar day in local time.
// Trash=false must also match records whose flag was never written.
type HistoryFilter struct {
	Day   *time.Time
	Trash bool
	Limit int
}

// SaleRepository defines persistence operations for sales.
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	// FindHistory returns sales matching the filter, newest first.
	FindHistory(ctx context.Context, filter HistoryFilter) ([]Sale, error)
	// FindCreatedBetween returns sales created in [from, to).
	FindCreatedBetween(ctx context.Context, from, to time.Time, includeTrashed bool) ([]Sale, error)
	// FindAllSales returns every sale ever recorded, for all-time totals.
	FindAllSales(ctx context.Context, includeTrashed bool) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}
