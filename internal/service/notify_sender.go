package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yaghiashraf/pet-alert/internal/config"
	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/internal/redis"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

// NotifySender drains the notification queue and delivers each intent to
// the configured gateway (the email/webhook collaborator). Delivery is
// best-effort with bounded retries; failures never touch alert state.
type NotifySender struct {
	logger *slog.Logger
	cfg    config.NotifyConfig
	queue  *redis.NotifyQueue
	http   *http.Client
}

func NewNotifySender(logger *slog.Logger, cfg config.NotifyConfig, q *redis.NotifyQueue) *NotifySender {
	return &NotifySender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *NotifySender) Run(ctx context.Context) {
	s.logger.Info("notifySender STARTED", slog.String("url", s.cfg.GatewayURL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notifySender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		intent, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrNotifyQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.logger.Info("sending notification",
			slog.String("alert_id", intent.AlertID.String()),
			slog.String("owner_email", intent.OwnerEmail),
		)
		s.sendWithRetry(ctx, intent)
	}
}

func (s *NotifySender) sendWithRetry(ctx context.Context, intent domain.NotificationIntent) {
	const maxRetries = 3

	body, err := json.Marshal(intent)
	if err != nil {
		s.logger.Error("marshal notification intent failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create notification request failed", slog.String("error", err.Error()))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("notification delivery failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.GatewayURL),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}
