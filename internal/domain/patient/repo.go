package patient

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/pkg/crud"
)

// Store is the persistence surface the service uses.
type Store interface {
	Get(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error)
	Create(ctx context.Context, p *Patient) (*Patient, error)
	Update(ctx context.Context, id int64, p *Patient) (*Patient, error)
	Delete(ctx context.Context, id int64) error
}

// Repository persists patients through the generic CRUD layer. The patient
// number never changes after creation, so it is not an updatable column.
type Repository struct {
	*crud.Repository[Patient]
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{crud.NewRepository(pool, mapper)}
}

var mapper = crud.Mapper[Patient]{
	Table: "patients",
	Columns: []string{
		"id", "patient_number", "first_name", "last_name", "date_of_birth",
		"gender", "phone", "email", "blood_group", "address", "status",
		"is_admitted", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Patient, error) {
		var p Patient
		err := row.Scan(&p.ID, &p.PatientNumber, &p.FirstName, &p.LastName, &p.DateOfBirth,
			&p.Gender, &p.Phone, &p.Email, &p.BloodGroup, &p.Address, &p.Status,
			&p.IsAdmitted, &p.CreatedAt, &p.UpdatedAt)
		return &p, err
	},
	Insert: func(p *Patient) ([]string, []interface{}) {
		return []string{
				"patient_number", "first_name", "last_name", "date_of_birth",
				"gender", "phone", "email", "blood_group", "address", "status", "is_admitted",
			}, []interface{}{
				p.PatientNumber, p.FirstName, p.LastName, p.DateOfBirth,
				p.Gender, p.Phone, p.Email, p.BloodGroup, p.Address, p.Status, p.IsAdmitted,
			}
	},
	Update: func(p *Patient) ([]string, []interface{}) {
		return []string{
				"first_name", "last_name", "date_of_birth", "gender", "phone",
				"email", "blood_group", "address", "status", "is_admitted",
			}, []interface{}{
				p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Phone,
				p.Email, p.BloodGroup, p.Address, p.Status, p.IsAdmitted,
			}
	},
}

// ListByStatus returns one page of patients in the given status.
func (r *Repository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	return r.ListWhere(ctx, "status = $1", []interface{}{status}, limit, offset)
}
