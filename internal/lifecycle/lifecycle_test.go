package lifecycle_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/internal/lifecycle"
	"github.com/yaghiashraf/pet-alert/internal/storage/memory"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

func newAlert(t *testing.T, store *memory.Store) *domain.Alert {
	t.Helper()
	alert := &domain.Alert{
		Lat: 40.0, Lng: -73.0,
		PetName: "Rex", PetType: "dog", Color: "brown", Size: "medium",
		Description:      "brown labrador, red collar",
		LastSeenLocation: "Prospect Park",
		ContactName:      "Dana", ContactEmail: "dana@example.com",
	}
	if err := store.Create(context.Background(), alert); err != nil {
		t.Fatalf("create alert: %v", err)
	}
	return alert
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := [][2]domain.AlertStatus{
		{domain.AlertActive, domain.AlertClaimed},
		{domain.AlertActive, domain.AlertResolved},
		{domain.AlertClaimed, domain.AlertResolved},
		{domain.AlertClaimed, domain.AlertActive},
	}
	for _, tr := range allowed {
		if !lifecycle.CanTransition(tr[0], tr[1]) {
			t.Fatalf("%s -> %s should be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]domain.AlertStatus{
		{domain.AlertResolved, domain.AlertActive},
		{domain.AlertResolved, domain.AlertClaimed},
		{domain.AlertResolved, domain.AlertResolved},
		{domain.AlertActive, domain.AlertActive},
		{domain.AlertClaimed, domain.AlertClaimed},
	}
	for _, tr := range denied {
		if lifecycle.CanTransition(tr[0], tr[1]) {
			t.Fatalf("%s -> %s should be denied", tr[0], tr[1])
		}
	}
}

func TestClaim_FirstSightingWins(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	engine := lifecycle.NewEngine(store)
	alert := newAlert(t, store)

	status, claimed, err := engine.Claim(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !claimed || status != domain.AlertClaimed {
		t.Fatalf("first claim: claimed=%v status=%s", claimed, status)
	}

	// A second sighting corroborates but does not transition.
	status, claimed, err = engine.Claim(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claimed || status != domain.AlertClaimed {
		t.Fatalf("second claim: claimed=%v status=%s", claimed, status)
	}
}

func TestClaim_ConcurrentSightingsExactlyOneWinner(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	engine := lifecycle.NewEngine(store)
	alert := newAlert(t, store)

	const racers = 32
	var wg sync.WaitGroup
	wins := make(chan bool, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, claimed, err := engine.Claim(context.Background(), alert.ID)
			if err != nil {
				t.Errorf("claim: %v", err)
				return
			}
			wins <- claimed
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for claimed := range wins {
		if claimed {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", won)
	}

	got, err := store.Get(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.AlertClaimed {
		t.Fatalf("final status = %s, want claimed", got.Status)
	}
}

func TestClaim_UnknownAlert(t *testing.T) {
	t.Parallel()

	engine := lifecycle.NewEngine(memory.NewStore())

	_, _, err := engine.Claim(context.Background(), uuid.New())
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_FromActiveAndClaimed(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	engine := lifecycle.NewEngine(store)

	// active -> resolved
	a := newAlert(t, store)
	status, err := engine.Resolve(context.Background(), a.ID, "Dana")
	if err != nil {
		t.Fatalf("resolve active: %v", err)
	}
	if status != domain.AlertResolved {
		t.Fatalf("status = %s", status)
	}
	got, err := store.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ResolvedBy != "Dana" || got.ResolvedAt == nil {
		t.Fatalf("resolved stamp missing: by=%q at=%v", got.ResolvedBy, got.ResolvedAt)
	}

	// claimed -> resolved
	b := newAlert(t, store)
	if _, _, err := engine.Claim(context.Background(), b.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := engine.Resolve(context.Background(), b.ID, ""); err != nil {
		t.Fatalf("resolve claimed: %v", err)
	}
	got, err = store.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ResolvedBy != "Anonymous" {
		t.Fatalf("empty resolvedBy should default to Anonymous, got %q", got.ResolvedBy)
	}
}

func TestResolve_Terminal(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	engine := lifecycle.NewEngine(store)
	alert := newAlert(t, store)

	if _, err := engine.Resolve(context.Background(), alert.ID, "Dana"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if _, err := engine.Resolve(context.Background(), alert.ID, "Dana"); !errors.Is(err, e.ErrInvalidTransition) {
		t.Fatalf("double resolve err = %v, want ErrInvalidTransition", err)
	}
	if _, err := engine.Reopen(context.Background(), alert.ID); !errors.Is(err, e.ErrInvalidTransition) {
		t.Fatalf("reopen after resolve err = %v, want ErrInvalidTransition", err)
	}
	_, claimed, err := engine.Claim(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("claim after resolve: %v", err)
	}
	if claimed {
		t.Fatalf("claim after resolve must not transition")
	}
}

func TestReopen(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	engine := lifecycle.NewEngine(store)
	alert := newAlert(t, store)

	// Reopening an alert that was never claimed is an invalid transition.
	if _, err := engine.Reopen(context.Background(), alert.ID); !errors.Is(err, e.ErrInvalidTransition) {
		t.Fatalf("reopen active err = %v, want ErrInvalidTransition", err)
	}

	if _, _, err := engine.Claim(context.Background(), alert.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	status, err := engine.Reopen(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if status != domain.AlertActive {
		t.Fatalf("status = %s, want active", status)
	}

	// The reopened alert can be claimed again.
	_, claimed, err := engine.Claim(context.Background(), alert.ID)
	if err != nil {
		t.Fatalf("reclaim: %v", err)
	}
	if !claimed {
		t.Fatalf("reopened alert should be claimable")
	}
}
