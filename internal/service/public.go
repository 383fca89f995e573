package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/internal/geoindex"
	"github.com/yaghiashraf/pet-alert/internal/lifecycle"
	"github.com/yaghiashraf/pet-alert/pkg/e"
	"github.com/yaghiashraf/pet-alert/pkg/validator"
)

// DefaultRadiusKM is used when a nearby query omits the radius.
// 3.2 km ~ 2 miles.
const DefaultRadiusKM = 3.2

const maxRadiusKM = 100.0

type publicAlertService struct {
	alerts          AlertStore
	reports         ReportStore
	geo             *geoindex.Index
	engine          *lifecycle.Engine
	notifyQ         NotifyQueue
	logger          *slog.Logger
	defaultRadiusKm float64
}

func NewPublicAlertService(
	alerts AlertStore,
	reports ReportStore,
	geo *geoindex.Index,
	engine *lifecycle.Engine,
	notifyQ NotifyQueue,
	logger *slog.Logger,
	defaultRadiusKm float64,
) PublicAlertService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKM
	}
	return &publicAlertService{
		alerts:          alerts,
		reports:         reports,
		geo:             geo,
		engine:          engine,
		notifyQ:         notifyQ,
		logger:          logger,
		defaultRadiusKm: defaultRadiusKm,
	}
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func (s *publicAlertService) CreateAlert(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error) {
	const op = "service.CreateAlert"

	if !validCoords(req.Lat, req.Lng) {
		s.logger.Warn("invalid coordinates",
			slog.Float64("lat", req.Lat),
			slog.Float64("lng", req.Lng),
		)
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, err
	}

	lastSeen := req.LastSeenDate
	if lastSeen.IsZero() {
		lastSeen = time.Now().UTC()
	}

	alert := &domain.Alert{
		ID:        uuid.New(),
		Lat:       req.Lat,
		Lng:       req.Lng,
		Status:    domain.AlertActive,
		CreatedAt: time.Now().UTC(),

		PetName:     req.PetName,
		PetType:     req.PetType,
		Breed:       req.Breed,
		Color:       req.Color,
		Size:        req.Size,
		Description: req.Description,
		ImageURL:    req.ImageURL,

		LastSeenLocation: req.LastSeenLocation,
		LastSeenDate:     lastSeen,

		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	if err := s.geo.Insert(alert.ID, alert.Lat, alert.Lng, alert.Status); err != nil {
		// Coordinates were validated above; an index failure here means the
		// projection diverged and a rebuild will reconcile it.
		s.logger.Error("geo index insert failed", slog.String("id", alert.ID.String()), slog.Any("error", err))
	}

	alertsCreated.Inc()
	s.logger.Info("alert created",
		slog.String("id", alert.ID.String()),
		slog.String("pet_name", alert.PetName),
		slog.Float64("lat", alert.Lat),
		slog.Float64("lng", alert.Lng),
	)
	return alert, nil
}

func (s *publicAlertService) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyAlert, error) {
	const op = "service.FindNearby"

	if !validCoords(lat, lng) {
		s.logger.Warn("invalid coordinates", slog.Float64("lat", lat), slog.Float64("lng", lng))
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if radiusKm <= 0 {
		radiusKm = s.defaultRadiusKm
	}
	if radiusKm > maxRadiusKM {
		radiusKm = maxRadiusKM
	}

	hits, err := s.geo.Query(lat, lng, radiusKm, domain.AlertActive)
	if err != nil {
		return nil, err
	}

	nearby := make([]domain.NearbyAlert, 0, len(hits))
	for _, hit := range hits {
		alert, err := s.alerts.Get(ctx, hit.AlertID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				// Stale projection entry; drop it and move on.
				s.logger.Warn("indexed alert missing from store, removing",
					slog.String("id", hit.AlertID.String()))
				s.geo.Remove(hit.AlertID)
				continue
			}
			return nil, err
		}
		nearby = append(nearby, domain.NearbyAlert{Alert: *alert, DistanceKM: hit.DistanceKM})
	}

	nearbyQueries.Inc()
	s.logger.Info("nearby query done",
		slog.Float64("lat", lat),
		slog.Float64("lng", lng),
		slog.Float64("radius_km", radiusKm),
		slog.Int("matches", len(nearby)),
	)
	return nearby, nil
}

func (s *publicAlertService) ReportSighting(ctx context.Context, alertID uuid.UUID, req domain.ReportSightingRequest) (*domain.FoundReport, domain.AlertStatus, error) {
	const op = "service.ReportSighting"

	if !validCoords(req.Lat, req.Lng) {
		s.logger.Warn("invalid coordinates", slog.Float64("lat", req.Lat), slog.Float64("lng", req.Lng))
		return nil, "", fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, "", err
	}

	report := &domain.FoundReport{
		ID:          uuid.New(),
		AlertID:     alertID,
		Lat:         req.Lat,
		Lng:         req.Lng,
		SubmittedAt: time.Now().UTC(),

		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		ReporterPhone: req.ReporterPhone,

		FoundLocation: req.FoundLocation,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, "", err
	}
	reportsSubmitted.Inc()

	status, claimed, err := s.engine.Claim(ctx, alertID)
	if err != nil {
		return nil, "", err
	}

	if claimed {
		claimsWon.Inc()
		if err := s.geo.UpdateStatus(alertID, domain.AlertClaimed); err != nil {
			s.logger.Error("geo index status update failed",
				slog.String("id", alertID.String()), slog.Any("error", err))
		}
		s.enqueueNotification(ctx, alertID, report)
		s.logger.Info("alert claimed",
			slog.String("alert_id", alertID.String()),
			slog.String("report_id", report.ID.String()),
		)
	} else {
		s.logger.Info("corroborating sighting recorded",
			slog.String("alert_id", alertID.String()),
			slog.String("report_id", report.ID.String()),
			slog.String("status", string(status)),
		)
	}

	return report, status, nil
}

// enqueueNotification hands the claim off to the notification queue.
// Best-effort: a queue failure never rolls back the persisted transition.
func (s *publicAlertService) enqueueNotification(ctx context.Context, alertID uuid.UUID, report *domain.FoundReport) {
	if s.notifyQ == nil {
		s.logger.Debug("notification queue disabled, intent dropped",
			slog.String("alert_id", alertID.String()))
		return
	}

	alert, err := s.alerts.Get(ctx, alertID)
	if err != nil {
		s.logger.Error("load alert for notification failed",
			slog.String("alert_id", alertID.String()), slog.Any("error", err))
		return
	}

	finder := report.ReporterName
	if finder == "" {
		finder = "Someone"
	}

	intent := domain.NotificationIntent{
		AlertID: alert.ID,

		PetName: alert.PetName,
		PetType: alert.PetType,

		OwnerName:  alert.ContactName,
		OwnerEmail: alert.ContactEmail,
		OwnerPhone: alert.ContactPhone,

		FinderName:  finder,
		FinderEmail: report.ReporterEmail,

		Lat:           report.Lat,
		Lng:           report.Lng,
		FoundLocation: report.FoundLocation,
		ClaimedAt:     time.Now().UTC(),
	}

	if err := s.notifyQ.Enqueue(ctx, intent); err != nil {
		s.logger.Error("enqueue notification failed",
			slog.String("alert_id", alert.ID.String()), slog.Any("error", err))
		return
	}
	s.logger.Info("notification enqueued", slog.String("alert_id", alert.ID.String()))
}

func (s *publicAlertService) Resolve(ctx context.Context, alertID uuid.UUID, resolvedBy string) (*domain.Alert, error) {
	_, err := s.engine.Resolve(ctx, alertID, resolvedBy)
	if err != nil {
		return nil, err
	}

	// Terminal: the alert leaves every search result.
	s.geo.Remove(alertID)
	s.logger.Info("alert resolved",
		slog.String("alert_id", alertID.String()),
		slog.String("resolved_by", resolvedBy),
	)

	return s.alerts.Get(ctx, alertID)
}

func (s *publicAlertService) GetAlert(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	return s.alerts.Get(ctx, id)
}

func (s *publicAlertService) ListFoundReports(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error) {
	if _, err := s.alerts.Get(ctx, alertID); err != nil {
		return nil, err
	}
	return s.reports.ListByAlert(ctx, alertID)
}

// RebuildIndex replaces the geo index with the store's searchable set.
// Run at startup and after any suspected index corruption; the store is
// the single source of truth.
func RebuildIndex(ctx context.Context, alerts AlertStore, geo *geoindex.Index, logger *slog.Logger) error {
	searchable, err := alerts.ListSearchable(ctx)
	if err != nil {
		return e.Wrap("service.RebuildIndex", err)
	}

	entries := make([]geoindex.Entry, 0, len(searchable))
	for _, a := range searchable {
		entries = append(entries, geoindex.Entry{
			AlertID: a.ID,
			Lat:     a.Lat,
			Lng:     a.Lng,
			Status:  a.Status,
		})
	}
	geo.Rebuild(entries)

	logger.Info("geo index rebuilt", slog.Int("entries", geo.Len()))
	return nil
}
