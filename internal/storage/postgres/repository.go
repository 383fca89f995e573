package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error)
	ListSearchable(ctx context.Context) ([]*domain.Alert, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from []domain.AlertStatus, to domain.AlertStatus, resolvedBy string, resolvedAt *time.Time) (domain.AlertStatus, bool, error)
}

type FoundReportRepository interface {
	Create(ctx context.Context, report *domain.FoundReport) error
	ListByAlert(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FoundReport, error)
}

type StatsRepository interface {
	CountByStatus(ctx context.Context) (map[domain.AlertStatus]int64, error)
	CountRecentReports(ctx context.Context, minutes int) (int64, error)
}

func (p *Postgres) AlertStore() AlertRepository        { return p.Alerts }
func (p *Postgres) ReportStore() FoundReportRepository { return p.Reports }
func (p *Postgres) Stats() StatsRepository             { return p.Stat }
