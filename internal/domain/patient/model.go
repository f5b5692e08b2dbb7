package patient

import "time"

// Patient statuses.
const (
	StatusActive      = "active"
	StatusDischarged  = "discharged"
	StatusDeceased    = "deceased"
	StatusTransferred = "transferred"
	StatusInactive    = "inactive"
)

var validStatuses = map[string]bool{
	StatusActive: true, StatusDischarged: true, StatusDeceased: true,
	StatusTransferred: true, StatusInactive: true,
}

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

// Patient is one registered patient. PatientNumber is the human-facing
// identifier used on wristbands and paperwork; the numeric id stays internal.
type Patient struct {
	ID            int64     `db:"id" json:"id"`
	PatientNumber string    `db:"patient_number" json:"patient_number"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	DateOfBirth   string    `db:"date_of_birth" json:"date_of_birth"`
	Gender        string    `db:"gender" json:"gender"`
	Phone         string    `db:"phone" json:"phone"`
	Email         *string   `db:"email" json:"email,omitempty"`
	BloodGroup    *string   `db:"blood_group" json:"blood_group,omitempty"`
	Address       *string   `db:"address" json:"address,omitempty"`
	Status        string    `db:"status" json:"status"`
	IsAdmitted    bool      `db:"is_admitted" json:"is_admitted"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
