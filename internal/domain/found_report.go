package domain

import (
	"time"

	"github.com/google/uuid"
)

// FoundReport is a sighting submitted against one alert. Immutable after
// creation; many reports may reference the same alert.
type FoundReport struct {
	ID          uuid.UUID `json:"id"`
	AlertID     uuid.UUID `json:"alert_id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	SubmittedAt time.Time `json:"submitted_at"`

	ReporterName  string `json:"reporter_name,omitempty"`
	ReporterEmail string `json:"reporter_email,omitempty"`
	ReporterPhone string `json:"reporter_phone,omitempty"`

	FoundLocation string `json:"found_location,omitempty"`
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}
