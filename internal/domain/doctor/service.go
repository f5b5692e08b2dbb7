package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	doctors Store
}

func NewService(doctors Store) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) Create(ctx context.Context, d *Doctor) (*Doctor, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	if d.DoctorNumber == "" {
		d.DoctorNumber = newDoctorNumber()
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, d *Doctor) (*Doctor, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	return s.doctors.Update(ctx, id, d)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListByDepartment(ctx context.Context, departmentID int64, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListByDepartment(ctx, departmentID, limit, offset)
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Doctor, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status: %s", status)
	}
	return s.doctors.ListByStatus(ctx, status, limit, offset)
}

func validate(d *Doctor) error {
	if d.FirstName == "" || d.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if d.Specialization == "" {
		return fmt.Errorf("specialization is required")
	}
	if d.LicenseNumber == "" {
		return fmt.Errorf("license_number is required")
	}
	if d.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if d.ConsultationFee < 0 {
		return fmt.Errorf("consultation_fee must not be negative")
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	if !validStatuses[d.Status] {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	return nil
}

func newDoctorNumber() string {
	return "DOC-" + strings.ToUpper(uuid.New().String()[:8])
}
