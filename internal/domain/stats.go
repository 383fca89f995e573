package domain

type StatsRequest struct {
	Minutes int `json:"minutes"`
}

type AlertStats struct {
	Active         int64 `json:"active"`
	Claimed        int64 `json:"claimed"`
	Resolved       int64 `json:"resolved"`
	RecentReports  int64 `json:"recent_reports"` // found reports submitted in the window
	WindowMinutes  int   `json:"window_minutes"`
	IndexedEntries int   `json:"indexed_entries"`
}
