package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationIntent is emitted when a sighting wins the active->claimed
// transition. Delivery is best-effort and never rolls back the transition.
type NotificationIntent struct {
	AlertID uuid.UUID `json:"alert_id"`

	PetName string `json:"pet_name"`
	PetType string `json:"pet_type"`

	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerPhone string `json:"owner_phone,omitempty"`

	FinderName  string `json:"finder_name,omitempty"`
	FinderEmail string `json:"finder_email,omitempty"`

	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	FoundLocation string    `json:"found_location,omitempty"`
	ClaimedAt     time.Time `json:"claimed_at"`
}
