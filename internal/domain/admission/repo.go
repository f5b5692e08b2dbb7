package admission

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/pkg/crud"
)

// Store is the persistence surface the service uses.
type Store interface {
	Get(ctx context.Context, id int64) (*Admission, error)
	List(ctx context.Context, limit, offset int) ([]*Admission, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Admission, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error)
	Create(ctx context.Context, a *Admission) (*Admission, error)
	Update(ctx context.Context, id int64, a *Admission) (*Admission, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	*crud.Repository[Admission]
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{crud.NewRepository(pool, mapper)}
}

var mapper = crud.Mapper[Admission]{
	Table: "admissions",
	Columns: []string{
		"id", "admission_number", "patient_id", "doctor_id", "department_id",
		"room_number", "bed_number", "admitted_at", "discharged_at",
		"diagnosis", "status", "notes", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Admission, error) {
		var a Admission
		err := row.Scan(&a.ID, &a.AdmissionNumber, &a.PatientID, &a.DoctorID, &a.DepartmentID,
			&a.RoomNumber, &a.BedNumber, &a.AdmittedAt, &a.DischargedAt,
			&a.Diagnosis, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
		return &a, err
	},
	Insert: func(a *Admission) ([]string, []interface{}) {
		return []string{
				"admission_number", "patient_id", "doctor_id", "department_id",
				"room_number", "bed_number", "admitted_at", "discharged_at",
				"diagnosis", "status", "notes",
			}, []interface{}{
				a.AdmissionNumber, a.PatientID, a.DoctorID, a.DepartmentID,
				a.RoomNumber, a.BedNumber, a.AdmittedAt, a.DischargedAt,
				a.Diagnosis, a.Status, a.Notes,
			}
	},
	Update: func(a *Admission) ([]string, []interface{}) {
		return []string{
				"patient_id", "doctor_id", "department_id", "room_number",
				"bed_number", "admitted_at", "discharged_at", "diagnosis",
				"status", "notes",
			}, []interface{}{
				a.PatientID, a.DoctorID, a.DepartmentID, a.RoomNumber,
				a.BedNumber, a.AdmittedAt, a.DischargedAt, a.Diagnosis,
				a.Status, a.Notes,
			}
	},
}

// ListByPatient returns one page of a patient's admissions.
func (r *Repository) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Admission, int, error) {
	return r.ListWhere(ctx, "patient_id = $1", []interface{}{patientID}, limit, offset)
}

// ListByStatus returns one page of admissions in the given status.
func (r *Repository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	return r.ListWhere(ctx, "status = $1", []interface{}{status}, limit, offset)
}
