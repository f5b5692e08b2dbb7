package appointment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/pkg/crud"
)

// Store is the persistence surface the service uses.
type Store interface {
	Get(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Appointment, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Appointment, int, error)
	Create(ctx context.Context, a *Appointment) (*Appointment, error)
	Update(ctx context.Context, id int64, a *Appointment) (*Appointment, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	*crud.Repository[Appointment]
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{crud.NewRepository(pool, mapper)}
}

var mapper = crud.Mapper[Appointment]{
	Table: "appointments",
	Columns: []string{
		"id", "appointment_number", "patient_id", "doctor_id", "department_id",
		"scheduled_at", "duration_minutes", "appointment_type", "status",
		"reason", "notes", "created_at", "updated_at",
	},
	Scan: func(row pgx.Row) (*Appointment, error) {
		var a Appointment
		err := row.Scan(&a.ID, &a.AppointmentNumber, &a.PatientID, &a.DoctorID, &a.DepartmentID,
			&a.ScheduledAt, &a.DurationMinutes, &a.AppointmentType, &a.Status,
			&a.Reason, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
		return &a, err
	},
	Insert: func(a *Appointment) ([]string, []interface{}) {
		return []string{
				"appointment_number", "patient_id", "doctor_id", "department_id",
				"scheduled_at", "duration_minutes", "appointment_type", "status",
				"reason", "notes",
			}, []interface{}{
				a.AppointmentNumber, a.PatientID, a.DoctorID, a.DepartmentID,
				a.ScheduledAt, a.DurationMinutes, a.AppointmentType, a.Status,
				a.Reason, a.Notes,
			}
	},
	Update: func(a *Appointment) ([]string, []interface{}) {
		return []string{
				"patient_id", "doctor_id", "department_id", "scheduled_at",
				"duration_minutes", "appointment_type", "status", "reason", "notes",
			}, []interface{}{
				a.PatientID, a.DoctorID, a.DepartmentID, a.ScheduledAt,
				a.DurationMinutes, a.AppointmentType, a.Status, a.Reason, a.Notes,
			}
	},
}

// ListByPatient returns one page of a patient's appointments.
func (r *Repository) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	return r.ListWhere(ctx, "patient_id = $1", []interface{}{patientID}, limit, offset)
}

// ListByDoctor returns one page of a doctor's appointments.
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Appointment, int, error) {
	return r.ListWhere(ctx, "doctor_id = $1", []interface{}{doctorID}, limit, offset)
}

// ListByStatus returns one page of appointments in the given status.
func (r *Repository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Appointment, int, error) {
	return r.ListWhere(ctx, "status = $1", []interface{}{status}, limit, offset)
}
