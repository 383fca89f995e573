package public

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type PublicAlerts interface {
	CreateAlert(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error)
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyAlert, error)
	ReportSighting(ctx context.Context, alertID uuid.UUID, req domain.ReportSightingRequest) (*domain.FoundReport, domain.AlertStatus, error)
	Resolve(ctx context.Context, alertID uuid.UUID, resolvedBy string) (*domain.Alert, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	ListFoundReports(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error)
}

type Handler struct {
	logger *slog.Logger
	Alerts PublicAlerts
}

func NewHandler(logger *slog.Logger, alerts PublicAlerts) *Handler {
	return &Handler{logger: logger, Alerts: alerts}
}

func (h *Handler) AlertCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	l.Info("creating alert",
		slog.String("pet_name", req.PetName),
		slog.Float64("lat", req.Lat),
		slog.Float64("lng", req.Lng),
	)

	alert, err := h.Alerts.CreateAlert(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert created", slog.String("id", alert.ID.String()))
	h.writeJSON(w, http.StatusCreated, alert)
}

func (h *Handler) AlertsNearby(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		l.Warn("missing or malformed lat/lng", slog.String("query", r.URL.RawQuery))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng query params are required"})
		return
	}

	radiusKm := 0.0
	if s := q.Get("radius_km"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed radius_km"})
			return
		}
		radiusKm = v
	}

	nearby, err := h.Alerts.FindNearby(r.Context(), lat, lng, radiusKm)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("nearby alerts served", slog.Int("count", len(nearby)))
	h.writeJSON(w, http.StatusOK, map[string]any{"alerts": nearby})
}

func (h *Handler) AlertGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	alert, err := h.Alerts.GetAlert(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) FoundReportList(w http.ResponseWriter, r *http.Request) {
	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	reports, err := h.Alerts.ListFoundReports(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (h *Handler) FoundReportCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.ReportSightingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	report, status, err := h.Alerts.ReportSighting(r.Context(), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("found report submitted",
		slog.String("alert_id", id.String()),
		slog.String("report_id", report.ID.String()),
		slog.String("new_status", string(status)),
	)
	h.writeJSON(w, http.StatusCreated, domain.ReportSightingResponse{
		Report:    *report,
		NewStatus: status,
	})
}

func (h *Handler) AlertResolve(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.alertID(w, r)
	if !ok {
		return
	}

	var req domain.ResolveAlertRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Warn("invalid JSON", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
	}

	alert, err := h.Alerts.Resolve(r.Context(), id, req.ResolvedBy)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert resolved", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) alertID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
