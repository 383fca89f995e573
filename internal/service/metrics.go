package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	alertsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petalert_alerts_created_total",
		Help: "Lost-pet alerts created.",
	})
	reportsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petalert_found_reports_total",
		Help: "Found reports submitted, including corroborating sightings.",
	})
	claimsWon = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petalert_claims_total",
		Help: "Found reports that won the active->claimed transition.",
	})
	nearbyQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "petalert_nearby_queries_total",
		Help: "Nearby alert queries served.",
	})
)
