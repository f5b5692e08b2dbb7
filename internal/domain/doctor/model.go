package doctor

import "time"

// Doctor statuses.
const (
	StatusActive    = "active"
	StatusOnLeave   = "on_leave"
	StatusRetired   = "retired"
	StatusSuspended = "suspended"
)

var validStatuses = map[string]bool{
	StatusActive: true, StatusOnLeave: true, StatusRetired: true, StatusSuspended: true,
}

// Doctor is one member of the medical staff. LicenseNumber is unique across
// the hospital and is checked by the database, not the service.
type Doctor struct {
	ID              int64     `db:"id" json:"id"`
	DoctorNumber    string    `db:"doctor_number" json:"doctor_number"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	Specialization  string    `db:"specialization" json:"specialization"`
	DepartmentID    *int64    `db:"department_id" json:"department_id,omitempty"`
	LicenseNumber   string    `db:"license_number" json:"license_number"`
	Phone           string    `db:"phone" json:"phone"`
	Email           *string   `db:"email" json:"email,omitempty"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
