package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// AlertStore is the authoritative persistence boundary for alerts. The geo
// index is a derived projection of it and must stay rebuildable from
// ListSearchable.
type AlertStore interface {
	Create(ctx context.Context, alert *domain.Alert) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error)
	ListSearchable(ctx context.Context) ([]*domain.Alert, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from []domain.AlertStatus, to domain.AlertStatus, resolvedBy string, resolvedAt *time.Time) (domain.AlertStatus, bool, error)
}

type ReportStore interface {
	Create(ctx context.Context, report *domain.FoundReport) error
	ListByAlert(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FoundReport, error)
}

type StatsStore interface {
	CountByStatus(ctx context.Context) (map[domain.AlertStatus]int64, error)
	CountRecentReports(ctx context.Context, minutes int) (int64, error)
}

// NotifyQueue receives notification intents on a won claim. Enqueue
// failures are logged and swallowed; delivery is invisible to the state
// machine.
type NotifyQueue interface {
	Enqueue(ctx context.Context, intent domain.NotificationIntent) error
}

// PublicAlertService is the public surface exposed to the HTTP layer.
type PublicAlertService interface {
	CreateAlert(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error)
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyAlert, error)
	ReportSighting(ctx context.Context, alertID uuid.UUID, req domain.ReportSightingRequest) (*domain.FoundReport, domain.AlertStatus, error)
	Resolve(ctx context.Context, alertID uuid.UUID, resolvedBy string) (*domain.Alert, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	ListFoundReports(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error)
}

type AdminAlertService interface {
	List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error)
	Reopen(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
}

type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error)
}

type Service struct {
	PublicAlertService PublicAlertService
	AdminAlertService  AdminAlertService
	StatsService       StatsService
}

func NewService(
	publicAlertService PublicAlertService,
	adminAlertService AdminAlertService,
	statsService StatsService,
) *Service {
	return &Service{
		PublicAlertService: publicAlertService,
		AdminAlertService:  adminAlertService,
		StatsService:       statsService,
	}
}
