package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertClaimed  AlertStatus = "claimed"
	AlertResolved AlertStatus = "resolved"
)

// Alert is a lost-pet report. Coordinates and id never change after
// creation; only Status, ResolvedBy and ResolvedAt mutate.
type Alert struct {
	ID        uuid.UUID   `json:"id"`
	Lat       float64     `json:"lat"` // -90..90
	Lng       float64     `json:"lng"` // -180..180
	Status    AlertStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`

	PetName     string `json:"pet_name"`
	PetType     string `json:"pet_type"` // dog | cat | other
	Breed       string `json:"breed,omitempty"`
	Color       string `json:"color"`
	Size        string `json:"size"` // small | medium | large
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`

	LastSeenLocation string    `json:"last_seen_location"`
	LastSeenDate     time.Time `json:"last_seen_date"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty"`

	ResolvedBy string     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Searchable reports whether the alert should be present in the geo index.
// Resolved alerts are terminal and never indexed.
func (s AlertStatus) Searchable() bool {
	return s == AlertActive || s == AlertClaimed
}

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertActive, AlertClaimed, AlertResolved:
		return true
	}
	return false
}
