package medicine

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/pkg/crud"
)

// Store is the persistence surface the service uses.
type Store interface {
	Get(ctx context.Context, id int64) (*Medicine, error)
	List(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	ListLowStock(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	Create(ctx context.Context, m *Medicine) (*Medicine, error)
	Update(ctx context.Context, id int64, m *Medicine) (*Medicine, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	*crud.Repository[Medicine]
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{crud.NewRepository(pool, mapper)}
}

var mapper = crud.Mapper[Medicine]{
	Table: "medicines",
	Columns: []string{
		"id", "name", "generic_name", "category", "manufacturer", "unit_price",
		"stock_quantity", "reorder_level", "expiry_date", "requires_prescription",
		"created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Medicine, error) {
		var m Medicine
		err := row.Scan(&m.ID, &m.Name, &m.GenericName, &m.Category, &m.Manufacturer, &m.UnitPrice,
			&m.StockQuantity, &m.ReorderLevel, &m.ExpiryDate, &m.RequiresPrescription,
			&m.CreatedAt, &m.UpdatedAt)
		return &m, err
	},
	Insert: func(m *Medicine) ([]string, []interface{}) {
		return []string{
				"name", "generic_name", "category", "manufacturer", "unit_price",
				"stock_quantity", "reorder_level", "expiry_date", "requires_prescription",
			}, []interface{}{
				m.Name, m.GenericName, m.Category, m.Manufacturer, m.UnitPrice,
				m.StockQuantity, m.ReorderLevel, m.ExpiryDate, m.RequiresPrescription,
			}
	},
	Update: func(m *Medicine) ([]string, []interface{}) {
		return []string{
				"name", "generic_name", "category", "manufacturer", "unit_price",
				"stock_quantity", "reorder_level", "expiry_date", "requires_prescription",
			}, []interface{}{
				m.Name, m.GenericName, m.Category, m.Manufacturer, m.UnitPrice,
				m.StockQuantity, m.ReorderLevel, m.ExpiryDate, m.RequiresPrescription,
			}
	},
}

// ListLowStock returns one page of medicines at or below their reorder level.
func (r *Repository) ListLowStock(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return r.ListWhere(ctx, "stock_quantity <= reorder_level", nil, limit, offset)
}
