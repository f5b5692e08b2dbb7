package doctor

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/pkg/crud"
)

// Store is the persistence surface the service uses.
type Store interface {
	Get(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) ([]*Doctor, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Doctor, int, error)
	Create(ctx context.Context, d *Doctor) (*Doctor, error)
	Update(ctx context.Context, id int64, d *Doctor) (*Doctor, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	*crud.Repository[Doctor]
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{crud.NewRepository(pool, mapper)}
}

var mapper = crud.Mapper[Doctor]{
	Table: "doctors",
	Columns: []string{
		"id", "doctor_number", "first_name", "last_name", "specialization",
		"department_id", "license_number", "phone", "email", "consultation_fee",
		"status", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Doctor, error) {
		var d Doctor
		err := row.Scan(&d.ID, &d.DoctorNumber, &d.FirstName, &d.LastName, &d.Specialization,
			&d.DepartmentID, &d.LicenseNumber, &d.Phone, &d.Email, &d.ConsultationFee,
			&d.Status, &d.CreatedAt, &d.UpdatedAt)
		return &d, err
	},
	Insert: func(d *Doctor) ([]string, []interface{}) {
		return []string{
				"doctor_number", "first_name", "last_name", "specialization",
				"department_id", "license_number", "phone", "email",
				"consultation_fee", "status",
			}, []interface{}{
				d.DoctorNumber, d.FirstName, d.LastName, d.Specialization,
				d.DepartmentID, d.LicenseNumber, d.Phone, d.Email,
				d.ConsultationFee, d.Status,
			}
	},
	Update: func(d *Doctor) ([]string, []interface{}) {
		return []string{
				"first_name", "last_name", "specialization", "department_id",
				"license_number", "phone", "email", "consultation_fee", "status",
			}, []interface{}{
				d.FirstName, d.LastName, d.Specialization, d.DepartmentID,
				d.LicenseNumber, d.Phone, d.Email, d.ConsultationFee, d.Status,
			}
	},
}

// ListByDepartment returns one page of doctors assigned to a department.
func (r *Repository) ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) ([]*Doctor, int, error) {
	return r.ListWhere(ctx, "department_id = $1", []interface{}{departmentID}, limit, offset)
}

// ListByStatus returns one page of doctors in the given status.
func (r *Repository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Doctor, int, error) {
	return r.ListWhere(ctx, "status = $1", []interface{}{status}, limit, offset)
}
