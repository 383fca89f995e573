package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
)

// Reports adapts the store to the found-report repository contract so the
// same service wiring works against postgres and memory.
type Reports struct {
	s *Store
}

func (s *Store) ReportStore() *Reports { return &Reports{s: s} }

func (r *Reports) Create(ctx context.Context, report *domain.FoundReport) error {
	return r.s.CreateReport(ctx, report)
}

func (r *Reports) ListByAlert(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error) {
	return r.s.ListReportsByAlert(ctx, alertID)
}

func (r *Reports) Get(ctx context.Context, id uuid.UUID) (*domain.FoundReport, error) {
	return r.s.GetReport(ctx, id)
}
