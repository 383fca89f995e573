package geoindex_test

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/internal/geoindex"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

// referenceDistance recomputes the great-circle distance independently of
// the implementation under test.
func referenceDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	phi1, phi2 := toRad(lat1), toRad(lat2)
	dPhi := toRad(lat2 - lat1)
	dLambda := toRad(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func TestHaversine_MatchesReference(t *testing.T) {
	t.Parallel()

	points := [][4]float64{
		{40.0, -73.0, 40.001, -73.001},
		{55.75, 37.61, 55.76, 37.62},
		{-33.86, 151.20, -33.87, 151.21},
		{0, 0, 0, 1},
		{89.9, 0, 89.9, 179},
		{-90, -180, 90, 180},
	}

	for _, p := range points {
		got := geoindex.Haversine(p[0], p[1], p[2], p[3])
		want := referenceDistance(p[0], p[1], p[2], p[3])
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("haversine(%v) = %v, reference = %v", p, got, want)
		}
	}
}

func TestQuery_NearbyHit(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	id := uuid.New()
	if err := ix.Insert(id, 40.0, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}

	hits, err := ix.Query(40.001, -73.001, 1, domain.AlertActive)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].AlertID != id {
		t.Fatalf("wrong alert returned")
	}
	// ~0.14 km separates the two points.
	if hits[0].DistanceKM < 0.13 || hits[0].DistanceKM > 0.15 {
		t.Fatalf("distance = %v, expected ~0.14", hits[0].DistanceKM)
	}
}

func TestQuery_OutOfRadius(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	if err := ix.Insert(uuid.New(), 40.0, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// One degree of latitude is ~111 km.
	hits, err := ix.Query(41.0, -73.0, 5, domain.AlertActive)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected empty result, got %d hits", len(hits))
	}
}

func TestQuery_SubsetForGrowingRadius(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	for i := 0; i < 50; i++ {
		lat := 40.0 + float64(i)*0.002
		lng := -73.0 - float64(i)*0.003
		if err := ix.Insert(uuid.New(), lat, lng, domain.AlertActive); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	radii := []float64{0.5, 1, 2, 5, 10, 50}
	var prev map[uuid.UUID]bool
	for _, r := range radii {
		hits, err := ix.Query(40.0, -73.0, r, domain.AlertActive)
		if err != nil {
			t.Fatalf("query r=%v: %v", r, err)
		}
		cur := make(map[uuid.UUID]bool, len(hits))
		for _, h := range hits {
			cur[h.AlertID] = true
		}
		for id := range prev {
			if !cur[id] {
				t.Fatalf("radius %v lost a hit present at a smaller radius", r)
			}
		}
		prev = cur
	}
}

func TestQuery_OrderedByDistanceThenID(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	// Two entries at identical coordinates force the id tiebreak.
	idA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	idB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	if err := ix.Insert(idB, 40.001, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := ix.Insert(idA, 40.001, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}
	far := uuid.New()
	if err := ix.Insert(far, 40.01, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}

	hits, err := ix.Query(40.0, -73.0, 10, domain.AlertActive)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if !sort.SliceIsSorted(hits, func(i, j int) bool {
		return hits[i].DistanceKM < hits[j].DistanceKM
	}) {
		t.Fatalf("hits not ordered by distance")
	}
	if hits[0].AlertID != idA || hits[1].AlertID != idB {
		t.Fatalf("equal distances not tie-broken by id: got %v, %v", hits[0].AlertID, hits[1].AlertID)
	}
	if hits[2].AlertID != far {
		t.Fatalf("farthest entry not last")
	}
}

func TestQuery_StatusFilter(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	active := uuid.New()
	claimed := uuid.New()
	if err := ix.Insert(active, 40.0, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := ix.Insert(claimed, 40.0, -73.0, domain.AlertClaimed); err != nil {
		t.Fatalf("insert: %v", err)
	}

	hits, err := ix.Query(40.0, -73.0, 1, domain.AlertActive)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 || hits[0].AlertID != active {
		t.Fatalf("active filter returned wrong set: %v", hits)
	}

	hits, err = ix.Query(40.0, -73.0, 1, domain.AlertActive, domain.AlertClaimed)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected both entries with widened filter, got %d", len(hits))
	}
}

func TestInsert_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	cases := [][2]float64{{200, 0}, {-91, 0}, {0, 181}, {0, -200}}
	for _, c := range cases {
		err := ix.Insert(uuid.New(), c[0], c[1], domain.AlertActive)
		if !errors.Is(err, e.ErrInvalidCoordinates) {
			t.Fatalf("insert(%v) err = %v, want ErrInvalidCoordinates", c, err)
		}
	}
	if ix.Len() != 0 {
		t.Fatalf("invalid inserts must not be stored")
	}
}

func TestQuery_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	if _, err := ix.Query(95, 0, 1, domain.AlertActive); !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	id := uuid.New()
	if err := ix.Insert(id, 40.0, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}

	ix.Remove(id)
	ix.Remove(id) // second remove must not panic or fail
	ix.Remove(uuid.New())

	if ix.Len() != 0 {
		t.Fatalf("expected empty index")
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	id := uuid.New()
	if err := ix.Insert(id, 40.0, -73.0, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := ix.UpdateStatus(id, domain.AlertClaimed); err != nil {
		t.Fatalf("update status: %v", err)
	}
	hits, err := ix.Query(40.0, -73.0, 1, domain.AlertClaimed)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("entry not visible under new status")
	}

	if err := ix.UpdateStatus(uuid.New(), domain.AlertClaimed); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestRebuild_ReplacesAndFilters(t *testing.T) {
	t.Parallel()

	ix := geoindex.New()
	if err := ix.Insert(uuid.New(), 10, 10, domain.AlertActive); err != nil {
		t.Fatalf("insert: %v", err)
	}

	kept := uuid.New()
	ix.Rebuild([]geoindex.Entry{
		{AlertID: kept, Lat: 40, Lng: -73, Status: domain.AlertActive},
		{AlertID: uuid.New(), Lat: 41, Lng: -73, Status: domain.AlertResolved}, // never indexed
		{AlertID: uuid.New(), Lat: 200, Lng: 0, Status: domain.AlertActive},    // invalid, skipped
	})

	if ix.Len() != 1 {
		t.Fatalf("expected 1 entry after rebuild, got %d", ix.Len())
	}
	hits, err := ix.Query(40, -73, 1, domain.AlertActive)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 || hits[0].AlertID != kept {
		t.Fatalf("rebuild did not keep the searchable entry")
	}
}
