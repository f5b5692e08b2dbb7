package appointment

import "time"

// Appointment statuses.
const (
	StatusScheduled   = "scheduled"
	StatusConfirmed   = "confirmed"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusNoShow      = "no_show"
	StatusRescheduled = "rescheduled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true, StatusInProgress: true,
	StatusCompleted: true, StatusCancelled: true, StatusNoShow: true,
	StatusRescheduled: true,
}

// Appointment types.
const (
	TypeConsultation   = "consultation"
	TypeFollowUp       = "follow_up"
	TypeEmergency      = "emergency"
	TypeRoutineCheckup = "routine_checkup"
	TypeDiagnostic     = "diagnostic"
	TypeVaccination    = "vaccination"
)

var validTypes = map[string]bool{
	TypeConsultation: true, TypeFollowUp: true, TypeEmergency: true,
	TypeRoutineCheckup: true, TypeDiagnostic: true, TypeVaccination: true,
}

// Appointment is one booked visit between a patient and a doctor.
type Appointment struct {
	ID                int64     `db:"id" json:"id"`
	AppointmentNumber string    `db:"appointment_number" json:"appointment_number"`
	PatientID         int64     `db:"patient_id" json:"patient_id"`
	DoctorID          int64     `db:"doctor_id" json:"doctor_id"`
	DepartmentID      *int64    `db:"department_id" json:"department_id,omitempty"`
	ScheduledAt       time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes   int       `db:"duration_minutes" json:"duration_minutes"`
	AppointmentType   string    `db:"appointment_type" json:"appointment_type"`
	Status            string    `db:"status" json:"status"`
	Reason            string    `db:"reason" json:"reason"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
