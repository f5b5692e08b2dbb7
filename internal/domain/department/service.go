package department

import (
	"context"
	"fmt"
)

type Service struct {
	departments Store
}

func NewService(departments Store) *Service {
	return &Service{departments: departments}
}

func (s *Service) Create(ctx context.Context, d *Department) (*Department, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return s.departments.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id int64) (*Department, error) {
	return s.departments.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, d *Department) (*Department, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return s.departments.Update(ctx, id, d)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.departments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.departments.List(ctx, limit, offset)
}

func (s *Service) ListActive(ctx context.Context, active bool, limit, offset int) ([]*Department, int, error) {
	return s.departments.ListActive(ctx, active, limit, offset)
}
