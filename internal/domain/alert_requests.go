package domain

import "time"

type CreateAlertRequest struct {
	// Zero is a legal coordinate (equator / prime meridian), so the range
	// rules stand alone without `required`.
	Lat float64 `json:"lat" validate:"lat"`
	Lng float64 `json:"lng" validate:"lng"`

	PetName     string `json:"pet_name" validate:"required"`
	PetType     string `json:"pet_type" validate:"required,oneof=dog cat other"`
	Breed       string `json:"breed" validate:"omitempty"`
	Color       string `json:"color" validate:"required"`
	Size        string `json:"size" validate:"required,oneof=small medium large"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`

	LastSeenLocation string    `json:"last_seen_location" validate:"required"`
	LastSeenDate     time.Time `json:"last_seen_date"`

	ContactName  string `json:"contact_name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"omitempty"`
}

type ReportSightingRequest struct {
	Lat float64 `json:"lat" validate:"lat"`
	Lng float64 `json:"lng" validate:"lng"`

	ReporterName  string `json:"reporter_name" validate:"omitempty"`
	ReporterEmail string `json:"reporter_email" validate:"omitempty,email"`
	ReporterPhone string `json:"reporter_phone" validate:"omitempty"`

	FoundLocation string `json:"found_location" validate:"omitempty"`
	Description   string `json:"description" validate:"omitempty"`
	ImageURL      string `json:"image_url" validate:"omitempty,url"`
}

type ReportSightingResponse struct {
	Report    FoundReport `json:"report"`
	NewStatus AlertStatus `json:"new_status"`
}

type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolved_by" validate:"omitempty"`
}

// NearbyAlert is one findNearby hit: the full alert joined with its
// great-circle distance from the query point.
type NearbyAlert struct {
	Alert      Alert   `json:"alert"`
	DistanceKM float64 `json:"distance_km"`
}

type ListAlertsRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

type ListAlertsResponse struct {
	Alerts []Alert `json:"alerts"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Total  int64   `json:"total"`
}
