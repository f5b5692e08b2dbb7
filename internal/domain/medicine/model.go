package medicine

import "time"

// DefaultReorderLevel is the stock threshold used when none is given.
const DefaultReorderLevel = 10

// Medicine is one pharmacy inventory item. ExpiryDate is a plain yyyy-mm-dd
// string; the pharmacy tracks batch-level expiries elsewhere.
type Medicine struct {
	ID                   int64     `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	GenericName          *string   `db:"generic_name" json:"generic_name,omitempty"`
	Category             *string   `db:"category" json:"category,omitempty"`
	Manufacturer         *string   `db:"manufacturer" json:"manufacturer,omitempty"`
	UnitPrice            float64   `db:"unit_price" json:"unit_price"`
	StockQuantity        int       `db:"stock_quantity" json:"stock_quantity"`
	ReorderLevel         int       `db:"reorder_level" json:"reorder_level"`
	ExpiryDate           *string   `db:"expiry_date" json:"expiry_date,omitempty"`
	RequiresPrescription bool      `db:"requires_prescription" json:"requires_prescription"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// IsLowStock reports whether the stock has fallen to the reorder level.
func (m *Medicine) IsLowStock() bool {
	return m.StockQuantity <= m.ReorderLevel
}
