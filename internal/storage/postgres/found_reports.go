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

const reportColumns = `
id, alert_id, lat, lng, submitted_at,
reporter_name, reporter_email, reporter_phone,
found_location, description, image_url`

type FoundReportRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewFoundReportRepo(pool *pgxpool.Pool, logger *slog.Logger) *FoundReportRepo {
	return &FoundReportRepo{pool: pool, logger: logger}
}

// Create persists a found report. The target alert must exist; submitting
// against an unknown alert fails with ErrNotFound.
func (r *FoundReportRepo) Create(ctx context.Context, report *domain.FoundReport) error {
	const op = "postgres.FoundReport.Create"

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pet_alerts WHERE id = $1)`, report.AlertID).Scan(&exists)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if !exists {
		return fmt.Errorf("%s: alert %s: %w", op, report.AlertID, e.ErrNotFound)
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.SubmittedAt.IsZero() {
		report.SubmittedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO found_reports (` + reportColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`
	_, err = r.pool.Exec(ctx, query,
		report.ID, report.AlertID, report.Lat, report.Lng, report.SubmittedAt,
		report.ReporterName, report.ReporterEmail, report.ReporterPhone,
		report.FoundLocation, report.Description, report.ImageURL,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// ListByAlert returns every found report against the alert, oldest first.
// The chronological order matters: the earliest report is the presumptive
// first finder.
func (r *FoundReportRepo) ListByAlert(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error) {
	const op = "postgres.FoundReport.ListByAlert"

	const query = `
SELECT ` + reportColumns + `
FROM found_reports
WHERE alert_id = $1
ORDER BY submitted_at, id
`
	rows, err := r.pool.Query(ctx, query, alertID)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	reports := make([]*domain.FoundReport, 0, 4)
	for rows.Next() {
		var fr domain.FoundReport
		err := rows.Scan(
			&fr.ID, &fr.AlertID, &fr.Lat, &fr.Lng, &fr.SubmittedAt,
			&fr.ReporterName, &fr.ReporterEmail, &fr.ReporterPhone,
			&fr.FoundLocation, &fr.Description, &fr.ImageURL,
		)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		reports = append(reports, &fr)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return reports, nil
}

func (r *FoundReportRepo) Get(ctx context.Context, id uuid.UUID) (*domain.FoundReport, error) {
	const op = "postgres.FoundReport.Get"

	const query = `SELECT ` + reportColumns + ` FROM found_reports WHERE id = $1`

	var fr domain.FoundReport
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&fr.ID, &fr.AlertID, &fr.Lat, &fr.Lng, &fr.SubmittedAt,
		&fr.ReporterName, &fr.ReporterEmail, &fr.ReporterPhone,
		&fr.FoundLocation, &fr.Description, &fr.ImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return &fr, nil
}
