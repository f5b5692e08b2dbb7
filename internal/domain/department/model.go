package department

import "time"

// Department is an organizational unit such as Cardiology or Radiology.
// Name is unique across the hospital and is checked by the database.
type Department struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Floor        *string   `db:"floor" json:"floor,omitempty"`
	HeadDoctorID *int64    `db:"head_doctor_id" json:"head_doctor_id,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
