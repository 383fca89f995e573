package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStatsRepo(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (r *StatsRepo) CountByStatus(ctx context.Context) (map[domain.AlertStatus]int64, error) {
	const op = "postgres.Stats.CountByStatus"

	const query = `SELECT status, COUNT(*) FROM pet_alerts GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	counts := make(map[domain.AlertStatus]int64, 3)
	for rows.Next() {
		var status domain.AlertStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return counts, nil
}

func (r *StatsRepo) CountRecentReports(ctx context.Context, minutes int) (int64, error) {
	const op = "postgres.Stats.CountRecentReports"

	if minutes <= 0 || minutes > 1440 {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
SELECT COUNT(*)
FROM found_reports
WHERE submitted_at >= NOW() - ($1 * INTERVAL '1 minute')
`
	var cnt int64
	if err := r.pool.QueryRow(ctx, query, minutes).Scan(&cnt); err != nil {
		r.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.Int("minutes", minutes),
		)
		return 0, e.WrapError(ctx, op, err)
	}
	return cnt, nil
}
