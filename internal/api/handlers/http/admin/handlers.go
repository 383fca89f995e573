package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AdminAlerts interface {
	List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error)
	Reopen(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.AlertStats, error)
}

type Handler struct {
	logger *slog.Logger
	Admin  AdminAlerts
	Stats  StatsGetter
}

func NewHandler(logger *slog.Logger, admin AdminAlerts, stats StatsGetter) *Handler {
	return &Handler{logger: logger, Admin: admin, Stats: stats}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminAlertList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}

	alerts, total, err := h.Admin.List(r.Context(), page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alerts listed", slog.Int("count", len(alerts)), slog.Int64("total", total))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (h *Handler) AdminAlertReopen(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminAlertReopen", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	alert, err := h.Admin.Reopen(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("alert reopened", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	minutesStr := r.URL.Query().Get("minutes")
	if minutesStr == "" {
		minutesStr = "60"
	}

	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 || minutes > 1440 {
		l.Warn("invalid minutes", slog.String("minutes", minutesStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be 1-1440"})
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), domain.StatsRequest{Minutes: minutes})
	if err != nil {
		l.Error("Stats.GetStats failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}
