package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultDurationMinutes is used when a booking does not state a duration.
const DefaultDurationMinutes = 30

type Service struct {
	appointments Store
}

func NewService(appointments Store) *Service {
	return &Service{appointments: appointments}
}

func (s *Service) Create(ctx context.Context, a *Appointment) (*Appointment, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	if a.AppointmentNumber == "" {
		a.AppointmentNumber = newAppointmentNumber()
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.appointments.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, a *Appointment) (*Appointment, error) {
	if err := validate(a); err != nil {
		return nil, err
	}
	return s.appointments.Update(ctx, id, a)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Appointment, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.appointments.ListByStatus(ctx, status, limit, offset)
}

func validate(a *Appointment) error {
	if a.PatientID <= 0 {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID <= 0 {
		return fmt.Errorf("doctor_id is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled_at is required")
	}
	if a.DurationMinutes == 0 {
		a.DurationMinutes = DefaultDurationMinutes
	}
	if a.DurationMinutes < 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if a.AppointmentType == "" {
		return fmt.Errorf("appointment_type is required")
	}
	if !validTypes[a.AppointmentType] {
		return fmt.Errorf("invalid appointment_type: %s", a.AppointmentType)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

func newAppointmentNumber() string {
	return "APT-" + strings.ToUpper(uuid.New().String()[:8])
}
