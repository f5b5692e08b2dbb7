package department

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/pkg/crud"
)

// Store is the persistence surface the service uses.
type Store interface {
	Get(ctx context.Context, id int64) (*Department, error)
	List(ctx context.Context, limit, offset int) ([]*Department, int, error)
	ListActive(ctx context.Context, active bool, limit, offset int) ([]*Department, int, error)
	Create(ctx context.Context, d *Department) (*Department, error)
	Update(ctx context.Context, id int64, d *Department) (*Department, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	*crud.Repository[Department]
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{crud.NewRepository(pool, mapper)}
}

var mapper = crud.Mapper[Department]{
	Table: "departments",
	Columns: []string{
		"id", "name", "description", "floor", "head_doctor_id", "is_active",
		"created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Department, error) {
		var d Department
		err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Floor, &d.HeadDoctorID, &d.IsActive,
			&d.CreatedAt, &d.UpdatedAt)
		return &d, err
	},
	Insert: func(d *Department) ([]string, []interface{}) {
		return []string{
				"name", "description", "floor", "head_doctor_id", "is_active",
			}, []interface{}{
				d.Name, d.Description, d.Floor, d.HeadDoctorID, d.IsActive,
			}
	},
	Update: func(d *Department) ([]string, []interface{}) {
		return []string{
				"name", "description", "floor", "head_doctor_id", "is_active",
			}, []interface{}{
				d.Name, d.Description, d.Floor, d.HeadDoctorID, d.IsActive,
			}
	},
}

// ListActive returns one page of departments filtered on the active flag.
func (r *Repository) ListActive(ctx context.Context, active bool, limit, offset int) ([]*Department, int, error) {
	return r.ListWhere(ctx, "is_active = $1", []interface{}{active}, limit, offset)
}
