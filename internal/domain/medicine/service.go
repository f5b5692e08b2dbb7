package medicine

import (
	"context"
	"fmt"
)

type Service struct {
	medicines Store
}

func NewService(medicines Store) *Service {
	return &Service{medicines: medicines}
}

func (s *Service) Create(ctx context.Context, m *Medicine) (*Medicine, error) {
	if err := validate(m); err != nil {
		return nil, err
	}
	if m.ReorderLevel == 0 {
		m.ReorderLevel = DefaultReorderLevel
	}
	return s.medicines.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id int64) (*Medicine, error) {
	return s.medicines.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, m *Medicine) (*Medicine, error) {
	if err := validate(m); err != nil {
		return nil, err
	}
	return s.medicines.Update(ctx, id, m)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.medicines.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.List(ctx, limit, offset)
}

func (s *Service) ListLowStock(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return s.medicines.ListLowStock(ctx, limit, offset)
}

func validate(m *Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative")
	}
	if m.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	if m.ReorderLevel < 0 {
		return fmt.Errorf("reorder_level must not be negative")
	}
	return nil
}
