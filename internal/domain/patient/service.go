package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	patients Store
}

func NewService(patients Store) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) (*Patient, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if p.PatientNumber == "" {
		p.PatientNumber = newPatientNumber()
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, p *Patient) (*Patient, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.patients.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.patients.ListByStatus(ctx, status, limit, offset)
}

func validate(p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.DateOfBirth == "" {
		return fmt.Errorf("date_of_birth is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return nil
}

// newPatientNumber builds a short unique wristband identifier.
func newPatientNumber() string {
	return "PAT-" + strings.ToUpper(uuid.New().String()[:8])
}
