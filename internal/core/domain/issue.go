package domain

import "time"

// Issue is a civic issue reported by a user (pothole, broken light, ...).
type Issue struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Location    GeoPoint  `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Issue statuses.
const (
	IssueOpen     = "open"
	IssueResolved = "resolved"
)
