// Package geoindex keeps a derived, rebuildable projection of searchable
// alerts (id + coordinates + status) and answers radius queries over it.
// The authoritative copy of every alert lives in storage; the index can be
// rebuilt from it at any time.
package geoindex

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

// Entry is one indexed alert.
type Entry struct {
	AlertID uuid.UUID
	Lat     float64
	Lng     float64
	Status  domain.AlertStatus
}

// Hit is a query result: an entry annotated with its great-circle
// distance from the query point.
type Hit struct {
	Entry
	DistanceKM float64
}

// Index is a flat in-memory set of entries guarded by a single RWMutex.
// A linear scan with the haversine filter is adequate for a metro's worth
// of concurrent alerts; this component is the extension point for an
// R-tree or geohash buckets if the scale ever demands it.
type Index struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
}

func New() *Index {
	return &Index{entries: make(map[uuid.UUID]Entry)}
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Insert adds or replaces the entry for the given alert.
func (ix *Index) Insert(alertID uuid.UUID, lat, lng float64, status domain.AlertStatus) error {
	if !validCoords(lat, lng) {
		return e.Wrap("geoindex.Insert", e.ErrInvalidCoordinates)
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries[alertID] = Entry{AlertID: alertID, Lat: lat, Lng: lng, Status: status}
	return nil
}

// UpdateStatus mutates the stored status without touching coordinates.
func (ix *Index) UpdateStatus(alertID uuid.UUID, status domain.AlertStatus) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	entry, ok := ix.entries[alertID]
	if !ok {
		return e.Wrap("geoindex.UpdateStatus", e.ErrNotFound)
	}
	entry.Status = status
	ix.entries[alertID] = entry
	return nil
}

// Remove deletes the entry. Removing an absent id is not an error.
func (ix *Index) Remove(alertID uuid.UUID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.entries, alertID)
}

// Query returns every entry within radiusKm of (lat, lng) whose status is
// in statusFilter, ordered by ascending distance, ties broken by alert id.
func (ix *Index) Query(lat, lng, radiusKm float64, statusFilter ...domain.AlertStatus) ([]Hit, error) {
	if !validCoords(lat, lng) {
		return nil, e.Wrap("geoindex.Query", e.ErrInvalidCoordinates)
	}

	allowed := make(map[domain.AlertStatus]struct{}, len(statusFilter))
	for _, s := range statusFilter {
		allowed[s] = struct{}{}
	}

	ix.mu.RLock()
	hits := make([]Hit, 0, 8)
	for _, entry := range ix.entries {
		if _, ok := allowed[entry.Status]; !ok {
			continue
		}
		dist := Haversine(lat, lng, entry.Lat, entry.Lng)
		if dist <= radiusKm {
			hits = append(hits, Hit{Entry: entry, DistanceKM: dist})
		}
	}
	ix.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].DistanceKM != hits[j].DistanceKM {
			return hits[i].DistanceKM < hits[j].DistanceKM
		}
		return strings.Compare(hits[i].AlertID.String(), hits[j].AlertID.String()) < 0
	})
	return hits, nil
}

// Rebuild atomically replaces the whole index with the given entries.
// Entries with invalid coordinates or a non-searchable status are skipped.
func (ix *Index) Rebuild(entries []Entry) {
	fresh := make(map[uuid.UUID]Entry, len(entries))
	for _, entry := range entries {
		if !validCoords(entry.Lat, entry.Lng) || !entry.Status.Searchable() {
			continue
		}
		fresh[entry.AlertID] = entry
	}
	ix.mu.Lock()
	ix.entries = fresh
	ix.mu.Unlock()
}

func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Haversine computes the great-circle distance in kilometers between two
// points given in degrees, on a mean Earth radius of 6371 km.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0

	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
