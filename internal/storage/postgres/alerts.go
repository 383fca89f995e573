package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

const alertColumns = `
id, lat, lng, status, created_at,
pet_name, pet_type, breed, color, size, description, image_url,
last_seen_location, last_seen_date,
contact_name, contact_email, contact_phone,
resolved_by, resolved_at`

type AlertRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAlertRepo(pool *pgxpool.Pool, logger *slog.Logger) *AlertRepo {
	return &AlertRepo{pool: pool, logger: logger}
}

func (r *AlertRepo) Create(ctx context.Context, alert *domain.Alert) error {
	const op = "postgres.Alert.Create"

	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	if alert.Status == "" {
		alert.Status = domain.AlertActive
	}

	const query = `
INSERT INTO pet_alerts (` + alertColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
`
	_, err := r.pool.Exec(ctx, query,
		alert.ID, alert.Lat, alert.Lng, alert.Status, alert.CreatedAt,
		alert.PetName, alert.PetType, alert.Breed, alert.Color, alert.Size,
		alert.Description, alert.ImageURL,
		alert.LastSeenLocation, alert.LastSeenDate,
		alert.ContactName, alert.ContactEmail, alert.ContactPhone,
		alert.ResolvedBy, alert.ResolvedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *AlertRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "postgres.Alert.Get"

	const query = `SELECT ` + alertColumns + ` FROM pet_alerts WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	alert, err := scanAlert(row)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return alert, nil
}

func (r *AlertRepo) List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error) {
	const op = "postgres.Alert.List"

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	const query = `
SELECT ` + alertColumns + `
FROM pet_alerts
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	alerts := make([]*domain.Alert, 0, limit)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, 0, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pet_alerts`).Scan(&total); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return alerts, total, nil
}

// ListSearchable returns the (id, lat, lng, status) projection of every
// alert that belongs in the geo index. Used for the rebuild-from-store
// recovery path at startup.
func (r *AlertRepo) ListSearchable(ctx context.Context) ([]*domain.Alert, error) {
	const op = "postgres.Alert.ListSearchable"

	const query = `
SELECT id, lat, lng, status
FROM pet_alerts
WHERE status IN ('active', 'claimed')
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	alerts := make([]*domain.Alert, 0, 64)
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.Lat, &a.Lng, &a.Status); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return alerts, nil
}

// CompareAndSetStatus is the atomic transition primitive: the status moves
// to `to` only if the current status is one of `from`, decided by a single
// UPDATE so that concurrent claims on the same alert serialize in the
// database. prev is the status found when the swap did not happen.
func (r *AlertRepo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from []domain.AlertStatus, to domain.AlertStatus, resolvedBy string, resolvedAt *time.Time) (domain.AlertStatus, bool, error) {
	const op = "postgres.Alert.CompareAndSetStatus"

	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	const query = `
UPDATE pet_alerts
SET status = $2,
    resolved_by = CASE WHEN $2 = 'resolved' THEN $4 ELSE resolved_by END,
    resolved_at = CASE WHEN $2 = 'resolved' THEN $5 ELSE resolved_at END
WHERE id = $1 AND status = ANY($3)
RETURNING status
`
	var updated domain.AlertStatus
	err := r.pool.QueryRow(ctx, query, id, to, fromStrs, resolvedBy, resolvedAt).Scan(&updated)
	if err == nil {
		return updated, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("db cas failed", slog.String("op", op), slog.Any("error", err))
		return "", false, e.WrapError(ctx, op, err)
	}

	// No row matched: either the alert is absent or its current status is
	// outside `from`. Distinguish the two for the caller.
	var prev domain.AlertStatus
	err = r.pool.QueryRow(ctx, `SELECT status FROM pet_alerts WHERE id = $1`, id).Scan(&prev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return "", false, e.WrapError(ctx, op, err)
	}
	return prev, false, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(
		&a.ID, &a.Lat, &a.Lng, &a.Status, &a.CreatedAt,
		&a.PetName, &a.PetType, &a.Breed, &a.Color, &a.Size,
		&a.Description, &a.ImageURL,
		&a.LastSeenLocation, &a.LastSeenDate,
		&a.ContactName, &a.ContactEmail, &a.ContactPhone,
		&a.ResolvedBy, &a.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
