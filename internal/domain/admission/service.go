package admission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	admissions Store
}

func NewService(admissions Store) *Service {
	return &Service{admissions: admissions}
}

func (s *Service) Create(ctx context.Context, a *Admission) (*Admission, error) {
	if err := normalize(a); err != nil {
		return nil, err
	}
	if a.AdmissionNumber == "" {
		a.AdmissionNumber = newAdmissionNumber()
	}
	return s.admissions.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Admission, error) {
	return s.admissions.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, a *Admission) (*Admission, error) {
	if err := normalize(a); err != nil {
		return nil, err
	}
	return s.admissions.Update(ctx, id, a)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.admissions.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.admissions.ListByStatus(ctx, status, limit, offset)
}

// normalize validates the admission and fills derived fields. Marking an
// admission discharged without a timestamp stamps it with the current time.
func normalize(a *Admission) error {
	if a.PatientID <= 0 {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID <= 0 {
		return fmt.Errorf("doctor_id is required")
	}
	if a.AdmittedAt.IsZero() {
		a.AdmittedAt = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = StatusAdmitted
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.Status == StatusDischarged && a.DischargedAt == nil {
		now := time.Now().UTC()
		a.DischargedAt = &now
	}
	if a.DischargedAt != nil && a.DischargedAt.Before(a.AdmittedAt) {
		return fmt.Errorf("discharged_at cannot be before admitted_at")
	}
	return nil
}

func newAdmissionNumber() string {
	return "ADM-" + strings.ToUpper(uuid.New().String()[:8])
}
