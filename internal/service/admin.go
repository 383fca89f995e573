package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/internal/geoindex"
	"github.com/yaghiashraf/pet-alert/internal/lifecycle"
)

type adminAlertService struct {
	alerts AlertStore
	geo    *geoindex.Index
	engine *lifecycle.Engine
	logger *slog.Logger
}

func NewAdminAlertService(alerts AlertStore, geo *geoindex.Index, engine *lifecycle.Engine, logger *slog.Logger) AdminAlertService {
	return &adminAlertService{alerts: alerts, geo: geo, engine: engine, logger: logger}
}

func (s *adminAlertService) List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error) {
	return s.alerts.List(ctx, page, limit)
}

// Reopen reverts an invalidated claim (claimed -> active) and puts the
// alert back into nearby search results.
func (s *adminAlertService) Reopen(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	if _, err := s.engine.Reopen(ctx, id); err != nil {
		return nil, err
	}

	if err := s.geo.UpdateStatus(id, domain.AlertActive); err != nil {
		// Claimed entries normally stay indexed; reinsert from the store if
		// the projection lost this one.
		alert, getErr := s.alerts.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if insErr := s.geo.Insert(alert.ID, alert.Lat, alert.Lng, alert.Status); insErr != nil {
			s.logger.Error("geo index reinsert failed",
				slog.String("id", id.String()), slog.Any("error", insErr))
		}
		return alert, nil
	}

	s.logger.Info("alert reopened", slog.String("id", id.String()))
	return s.alerts.Get(ctx, id)
}

type statsService struct {
	stats StatsStore
	geo   *geoindex.Index
}

func NewStatsService(stats StatsStore, geo *geoindex.Index) StatsService {
	return &statsService{stats: stats, geo: geo}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error) {
	minutes := req.Minutes
	if minutes <= 0 {
		minutes = 60
	}

	counts, err := s.stats.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.stats.CountRecentReports(ctx, minutes)
	if err != nil {
		return nil, err
	}

	return &domain.AlertStats{
		Active:         counts[domain.AlertActive],
		Claimed:        counts[domain.AlertClaimed],
		Resolved:       counts[domain.AlertResolved],
		RecentReports:  recent,
		WindowMinutes:  minutes,
		IndexedEntries: s.geo.Len(),
	}, nil
}
