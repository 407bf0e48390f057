package settings

import (
	"context"

	"github.com/grocery/backend/internal/domain/shared"
)

// BillFormat selects the printable bill template.
type BillFormat string

const (
	BillFormatA4      BillFormat = "A4"
	BillFormatThermal BillFormat = "Thermal"
)

// StoreSettings is the single store configuration record. At most one
// instance exists; reads create it with defaults when absent.
type StoreSettings struct {
	shared.BaseEntity
	StoreName      string
	Tagline        string
	Address        string
	Phone          string
	Email          string
	Website        string
	GSTIN          string
	FooterMessage  string
	WhatsappHeader string
	WhatsappFooter string
	BillFormat     BillFormat
}

// DefaultStoreSettings returns the record created on first read.
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		BaseEntity:    shared.NewBaseEntity(),
		StoreName:     "My Grocery Store",
		FooterMessage: "Thank you for shopping with us!",
		BillFormat:    BillFormatA4,
	}
}

// ValidBillFormat reports whether f is a supported template.
func ValidBillFormat(f BillFormat) bool {
	return f == BillFormatA4 || f == BillFormatThermal
}

// Repository defines persistence for the settings singleton.
type Repository interface {
	// Load returns the settings record, or shared.ErrNotFound when the
	// store has never been configured.
	Load(ctx context.Context) (*StoreSettings, error)
	Save(ctx context.Context, s *StoreSettings) error
}
