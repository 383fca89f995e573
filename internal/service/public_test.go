package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/internal/geoindex"
	"github.com/yaghiashraf/pet-alert/internal/lifecycle"
	"github.com/yaghiashraf/pet-alert/internal/service"
	"github.com/yaghiashraf/pet-alert/internal/storage/memory"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

type fakeNotifyQueue struct {
	mu      sync.Mutex
	intents []domain.NotificationIntent
	fail    bool
}

func (q *fakeNotifyQueue) Enqueue(_ context.Context, intent domain.NotificationIntent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.fail {
		return errors.New("queue down")
	}
	q.intents = append(q.intents, intent)
	return nil
}

func (q *fakeNotifyQueue) all() []domain.NotificationIntent {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.NotificationIntent(nil), q.intents...)
}

type fixture struct {
	store  *memory.Store
	geo    *geoindex.Index
	queue  *fakeNotifyQueue
	public service.PublicAlertService
	admin  service.AdminAlertService
	stats  service.StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	geo := geoindex.New()
	engine := lifecycle.NewEngine(store)
	queue := &fakeNotifyQueue{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		store:  store,
		geo:    geo,
		queue:  queue,
		public: service.NewPublicAlertService(store, store.ReportStore(), geo, engine, queue, logger, 0),
		admin:  service.NewAdminAlertService(store, geo, engine, logger),
		stats:  service.NewStatsService(store, geo),
	}
}

func validCreateReq() domain.CreateAlertRequest {
	return domain.CreateAlertRequest{
		Lat: 40.0, Lng: -73.0,
		PetName: "Rex", PetType: "dog", Color: "brown", Size: "medium",
		Description:      "brown labrador, red collar",
		LastSeenLocation: "Prospect Park",
		ContactName:      "Dana", ContactEmail: "dana@example.com",
	}
}

func TestCreateAlert(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	alert, err := f.public.CreateAlert(context.Background(), validCreateReq())
	require.NoError(t, err)
	require.Equal(t, domain.AlertActive, alert.Status)
	require.NotEqual(t, uuid.Nil, alert.ID)
	require.Equal(t, 1, f.geo.Len())
}

func TestCreateAlert_ZeroCoordinatesAreValid(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// Equator and prime meridian are legal positions, not missing fields.
	req := validCreateReq()
	req.Lat, req.Lng = 0, 12.5
	alert, err := f.public.CreateAlert(ctx, req)
	require.NoError(t, err)

	req = validCreateReq()
	req.Lat, req.Lng = 51.48, 0
	_, err = f.public.CreateAlert(ctx, req)
	require.NoError(t, err)

	got, err := f.public.FindNearby(ctx, 0, 12.5, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, alert.ID, got[0].Alert.ID)

	_, status, err := f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{
		Lat: 0, Lng: 12.5,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AlertClaimed, status)
}

func TestCreateAlert_InvalidLatitude(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := validCreateReq()
	req.Lat = 200

	_, err := f.public.CreateAlert(context.Background(), req)
	require.ErrorIs(t, err, e.ErrInvalidCoordinates)
	require.Equal(t, 0, f.geo.Len())
}

func TestCreateAlert_MissingFieldsListed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	req := validCreateReq()
	req.PetName = ""
	req.ContactEmail = ""

	_, err := f.public.CreateAlert(context.Background(), req)
	require.Error(t, err)

	var verr *e.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "PetName")
	require.Contains(t, verr.Fields, "ContactEmail")
}

func TestFindNearby_JoinsAndOrders(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	near := validCreateReq()
	near.Lat, near.Lng = 40.001, -73.001
	nearAlert, err := f.public.CreateAlert(ctx, near)
	require.NoError(t, err)

	farther := validCreateReq()
	farther.Lat, farther.Lng = 40.005, -73.005
	fartherAlert, err := f.public.CreateAlert(ctx, farther)
	require.NoError(t, err)

	outside := validCreateReq()
	outside.Lat, outside.Lng = 41.0, -73.0
	_, err = f.public.CreateAlert(ctx, outside)
	require.NoError(t, err)

	got, err := f.public.FindNearby(ctx, 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, nearAlert.ID, got[0].Alert.ID)
	require.Equal(t, fartherAlert.ID, got[1].Alert.ID)
	require.Less(t, got[0].DistanceKM, got[1].DistanceKM)
	// The join returns the full payload, not just the projection.
	require.Equal(t, "Rex", got[0].Alert.PetName)
}

func TestFindNearby_EmptyIsNotError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	got, err := f.public.FindNearby(context.Background(), 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFindNearby_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.public.FindNearby(context.Background(), 91, 0, 5)
	require.ErrorIs(t, err, e.ErrInvalidCoordinates)
}

func TestReportSighting_ClaimsThenCorroborates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	alert, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)

	s1, status, err := f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{
		Lat: 40.002, Lng: -73.002, ReporterName: "Finn", ReporterEmail: "finn@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, domain.AlertClaimed, status)

	s2, status, err := f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{
		Lat: 40.003, Lng: -73.003,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AlertClaimed, status)

	reports, err := f.public.ListFoundReports(ctx, alert.ID)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, s1.ID, reports[0].ID)
	require.Equal(t, s2.ID, reports[1].ID)

	// Claimed alerts leave the active-only nearby results.
	got, err := f.public.FindNearby(ctx, 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Empty(t, got)

	// Exactly one notification for the winning claim.
	require.Len(t, f.queue.all(), 1)
	intent := f.queue.all()[0]
	require.Equal(t, alert.ID, intent.AlertID)
	require.Equal(t, "Rex", intent.PetName)
	require.Equal(t, "dana@example.com", intent.OwnerEmail)
	require.Equal(t, "Finn", intent.FinderName)
}

func TestReportSighting_UnknownAlert(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, _, err := f.public.ReportSighting(context.Background(), uuid.New(), domain.ReportSightingRequest{
		Lat: 40, Lng: -73,
	})
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestReportSighting_QueueFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.queue.fail = true

	alert, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)

	_, status, err := f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{
		Lat: 40.002, Lng: -73.002,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AlertClaimed, status)

	got, err := f.public.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AlertClaimed, got.Status)
}

func TestReportSighting_ConcurrentRace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	alert, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)

	const racers = 16
	var wg sync.WaitGroup
	statuses := make(chan domain.AlertStatus, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, status, err := f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{
				Lat: 40.002, Lng: -73.002,
			})
			if err != nil {
				t.Errorf("report sighting: %v", err)
				return
			}
			statuses <- status
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		require.Equal(t, domain.AlertClaimed, status)
	}

	// Every sighting is persisted, but only one won the claim.
	reports, err := f.public.ListFoundReports(ctx, alert.ID)
	require.NoError(t, err)
	require.Len(t, reports, racers)
	require.Len(t, f.queue.all(), 1)
}

func TestResolve_RemovesFromSearch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	alert, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)
	_, _, err = f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{Lat: 40.002, Lng: -73.002})
	require.NoError(t, err)

	resolved, err := f.public.Resolve(ctx, alert.ID, "Dana")
	require.NoError(t, err)
	require.Equal(t, domain.AlertResolved, resolved.Status)
	require.Equal(t, "Dana", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	got, err := f.public.FindNearby(ctx, 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, 0, f.geo.Len())

	// Terminal.
	_, err = f.public.Resolve(ctx, alert.ID, "Dana")
	require.ErrorIs(t, err, e.ErrInvalidTransition)
}

func TestReopen_ReentersSearch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	alert, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)
	_, _, err = f.public.ReportSighting(ctx, alert.ID, domain.ReportSightingRequest{Lat: 40.002, Lng: -73.002})
	require.NoError(t, err)

	got, err := f.public.FindNearby(ctx, 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Empty(t, got)

	reopened, err := f.admin.Reopen(ctx, alert.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AlertActive, reopened.Status)

	got, err = f.public.FindNearby(ctx, 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, alert.ID, got[0].Alert.ID)
}

func TestRebuildIndex_FromStore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	alert, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)

	// Simulate index loss; the store is the source of truth.
	f.geo.Rebuild(nil)
	require.Equal(t, 0, f.geo.Len())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, service.RebuildIndex(ctx, f.store, f.geo, logger))
	require.Equal(t, 1, f.geo.Len())

	got, err := f.public.FindNearby(ctx, 40.0, -73.0, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, alert.ID, got[0].Alert.ID)
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	a, err := f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)
	_, err = f.public.CreateAlert(ctx, validCreateReq())
	require.NoError(t, err)
	_, _, err = f.public.ReportSighting(ctx, a.ID, domain.ReportSightingRequest{Lat: 40.002, Lng: -73.002})
	require.NoError(t, err)

	stats, err := f.stats.GetStats(ctx, domain.StatsRequest{Minutes: 60})
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Active)
	require.EqualValues(t, 1, stats.Claimed)
	require.EqualValues(t, 0, stats.Resolved)
	require.EqualValues(t, 1, stats.RecentReports)
	require.Equal(t, 2, stats.IndexedEntries)
}
