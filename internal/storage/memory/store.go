// Package memory provides a mutex-guarded in-memory alert store with the
// same contract as the postgres repositories. It backs tests and local
// runs without a database; the geo index can be rebuilt from it the same
// way it is rebuilt from postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

type Store struct {
	mu      sync.RWMutex
	alerts  map[uuid.UUID]domain.Alert
	reports map[uuid.UUID]domain.FoundReport
}

func NewStore() *Store {
	return &Store{
		alerts:  make(map[uuid.UUID]domain.Alert),
		reports: make(map[uuid.UUID]domain.FoundReport),
	}
}

func (s *Store) Create(ctx context.Context, alert *domain.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	if alert.Status == "" {
		alert.Status = domain.AlertActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alerts[alert.ID]; ok {
		return fmt.Errorf("memory.Alert.Create: %w", e.ErrUniqueViolation)
	}
	s.alerts[alert.ID] = *alert
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[id]
	if !ok {
		return nil, fmt.Errorf("memory.Alert.Get: %w", e.ErrNotFound)
	}
	return &alert, nil
}

func (s *Store) List(ctx context.Context, page, limit int) ([]*domain.Alert, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	s.mu.RLock()
	all := make([]domain.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		all = append(all, a)
	}
	s.mu.RUnlock()

	// Newest first, id tiebreak, matching the postgres ordering.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []*domain.Alert{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	out := make([]*domain.Alert, 0, end-start)
	for i := start; i < end; i++ {
		a := all[i]
		out = append(out, &a)
	}
	return out, total, nil
}

func (s *Store) ListSearchable(ctx context.Context) ([]*domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if a.Status.Searchable() {
			alert := a
			out = append(out, &alert)
		}
	}
	return out, nil
}

// CompareAndSetStatus applies the status swap under the store lock, which
// serializes concurrent transitions the same way the postgres UPDATE does.
func (s *Store) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from []domain.AlertStatus, to domain.AlertStatus, resolvedBy string, resolvedAt *time.Time) (domain.AlertStatus, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[id]
	if !ok {
		return "", false, fmt.Errorf("memory.Alert.CompareAndSetStatus: %w", e.ErrNotFound)
	}

	matched := false
	for _, f := range from {
		if alert.Status == f {
			matched = true
			break
		}
	}
	if !matched {
		return alert.Status, false, nil
	}

	alert.Status = to
	if to == domain.AlertResolved {
		alert.ResolvedBy = resolvedBy
		alert.ResolvedAt = resolvedAt
	}
	s.alerts[id] = alert
	return to, true, nil
}

func (s *Store) CreateReport(ctx context.Context, report *domain.FoundReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.SubmittedAt.IsZero() {
		report.SubmittedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alerts[report.AlertID]; !ok {
		return fmt.Errorf("memory.FoundReport.Create: alert %s: %w", report.AlertID, e.ErrNotFound)
	}
	s.reports[report.ID] = *report
	return nil
}

func (s *Store) ListReportsByAlert(ctx context.Context, alertID uuid.UUID) ([]*domain.FoundReport, error) {
	s.mu.RLock()
	reports := make([]domain.FoundReport, 0, 4)
	for _, r := range s.reports {
		if r.AlertID == alertID {
			reports = append(reports, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].SubmittedAt.Equal(reports[j].SubmittedAt) {
			return reports[i].SubmittedAt.Before(reports[j].SubmittedAt)
		}
		return reports[i].ID.String() < reports[j].ID.String()
	})

	out := make([]*domain.FoundReport, 0, len(reports))
	for i := range reports {
		out = append(out, &reports[i])
	}
	return out, nil
}

func (s *Store) GetReport(ctx context.Context, id uuid.UUID) (*domain.FoundReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, fmt.Errorf("memory.FoundReport.Get: %w", e.ErrNotFound)
	}
	return &report, nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[domain.AlertStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.AlertStatus]int64, 3)
	for _, a := range s.alerts {
		counts[a.Status]++
	}
	return counts, nil
}

func (s *Store) CountRecentReports(ctx context.Context, minutes int) (int64, error) {
	if minutes <= 0 || minutes > 1440 {
		return 0, fmt.Errorf("memory.Stats.CountRecentReports: %w", e.ErrInvalidInput)
	}
	cutoff := time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var cnt int64
	for _, r := range s.reports {
		if !r.SubmittedAt.Before(cutoff) {
			cnt++
		}
	}
	return cnt, nil
}
