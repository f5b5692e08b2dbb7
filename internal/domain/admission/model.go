package admission

import "time"

// Admission statuses.
const (
	StatusAdmitted    = "admitted"
	StatusDischarged  = "discharged"
	StatusTransferred = "transferred"
)

var validStatuses = map[string]bool{
	StatusAdmitted: true, StatusDischarged: true, StatusTransferred: true,
}

// Admission is one inpatient stay. DischargedAt stays nil until the stay
// ends; a discharged admission always carries the timestamp.
type Admission struct {
	ID              int64      `db:"id" json:"id"`
	AdmissionNumber string     `db:"admission_number" json:"admission_number"`
	PatientID       int64      `db:"patient_id" json:"patient_id"`
	DoctorID        int64      `db:"doctor_id" json:"doctor_id"`
	DepartmentID    *int64     `db:"department_id" json:"department_id,omitempty"`
	RoomNumber      *string    `db:"room_number" json:"room_number,omitempty"`
	BedNumber       *string    `db:"bed_number" json:"bed_number,omitempty"`
	AdmittedAt      time.Time  `db:"admitted_at" json:"admitted_at"`
	DischargedAt    *time.Time `db:"discharged_at" json:"discharged_at,omitempty"`
	Diagnosis       *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Status          string     `db:"status" json:"status"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
