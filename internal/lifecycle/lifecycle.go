// Package lifecycle owns the alert status state machine:
//
//	active -> claimed   (first accepted found report)
//	active -> resolved  (owner confirms without a claim)
//	claimed -> resolved (owner confirms recovery)
//	claimed -> active   (claim invalidated, alert re-enters search)
//
// resolved is terminal. Transitions are applied through the store's
// compare-and-set so that exactly one active->claimed ever wins under
// concurrent sighting submissions.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yaghiashraf/pet-alert/internal/domain"
	"github.com/yaghiashraf/pet-alert/pkg/e"
)

var transitions = map[domain.AlertStatus]map[domain.AlertStatus]bool{
	domain.AlertActive: {
		domain.AlertClaimed:  true,
		domain.AlertResolved: true,
	},
	domain.AlertClaimed: {
		domain.AlertResolved: true,
		domain.AlertActive:   true,
	},
	domain.AlertResolved: {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to domain.AlertStatus) bool {
	return transitions[from][to]
}

// StatusStore is the slice of the alert store the engine needs: an atomic
// compare-and-set on status, keyed by alert id. swapped is false when the
// current status was not one of from; prev is the status found either way.
type StatusStore interface {
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from []domain.AlertStatus, to domain.AlertStatus, resolvedBy string, resolvedAt *time.Time) (prev domain.AlertStatus, swapped bool, err error)
}

type Engine struct {
	store StatusStore
}

func NewEngine(store StatusStore) *Engine {
	return &Engine{store: store}
}

// Claim attempts the active->claimed transition for a newly accepted found
// report. When the alert is already claimed or resolved the report is a
// corroborating sighting: the status is returned unchanged and claimed is
// false, with no error.
func (en *Engine) Claim(ctx context.Context, id uuid.UUID) (domain.AlertStatus, bool, error) {
	const op = "lifecycle.Claim"

	prev, swapped, err := en.store.CompareAndSetStatus(ctx, id,
		[]domain.AlertStatus{domain.AlertActive}, domain.AlertClaimed, "", nil)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if swapped {
		return domain.AlertClaimed, true, nil
	}
	return prev, false, nil
}

// Resolve confirms recovery: active|claimed -> resolved, stamping
// resolvedBy/resolvedAt. Resolving an already resolved alert fails with
// ErrInvalidTransition; resolved is terminal.
func (en *Engine) Resolve(ctx context.Context, id uuid.UUID, resolvedBy string) (domain.AlertStatus, error) {
	const op = "lifecycle.Resolve"

	if resolvedBy == "" {
		resolvedBy = "Anonymous"
	}
	now := time.Now().UTC()

	prev, swapped, err := en.store.CompareAndSetStatus(ctx, id,
		[]domain.AlertStatus{domain.AlertActive, domain.AlertClaimed}, domain.AlertResolved, resolvedBy, &now)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !swapped {
		return prev, fmt.Errorf("%s: %s -> %s: %w", op, prev, domain.AlertResolved, e.ErrInvalidTransition)
	}
	return domain.AlertResolved, nil
}

// Reopen reverts an invalidated claim: claimed -> active. Any other source
// status fails with ErrInvalidTransition.
func (en *Engine) Reopen(ctx context.Context, id uuid.UUID) (domain.AlertStatus, error) {
	const op = "lifecycle.Reopen"

	prev, swapped, err := en.store.CompareAndSetStatus(ctx, id,
		[]domain.AlertStatus{domain.AlertClaimed}, domain.AlertActive, "", nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !swapped {
		return prev, fmt.Errorf("%s: %s -> %s: %w", op, prev, domain.AlertActive, e.ErrInvalidTransition)
	}
	return domain.AlertActive, nil
}
