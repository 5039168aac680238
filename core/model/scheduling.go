package model

import "time"

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// PriorJob is an already booked shoot used to route new work near it.
type PriorJob struct {
	ResourceID   string      `json:"resource_id"`
	ResourceName string      `json:"resource_name,omitempty"`
	Location     *Coordinate `json:"location,omitempty"`
	Date         time.Time   `json:"date"`
	Time         string      `json:"time,omitempty"`
}

// Resource is a photographer with the time slots they accept bookings at.
type Resource struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	AvailableTimes []string `json:"available_times"`
}

// FirstSlot returns the earliest listed slot.
func (r Resource) FirstSlot() (string, bool) {
	if len(r.AvailableTimes) == 0 {
		return "", false
	}
	return r.AvailableTimes[0], true
}

// SuggestRequest is the input of the scheduling advisor.
type SuggestRequest struct {
	Target            *Coordinate `json:"target,omitempty"`
	PreferredResource string      `json:"preferred_resource,omitempty"`
	PriorJobs         []PriorJob  `json:"prior_jobs"`
	Resources         []Resource  `json:"resources"`
}

// SuggestionKind tells which pass produced a suggestion.
type SuggestionKind string

const (
	SuggestionNearby    SuggestionKind = "nearby"
	SuggestionPreferred SuggestionKind = "preferred"
	SuggestionAvailable SuggestionKind = "available"
)

// Suggestion is a proposed appointment slot.
type Suggestion struct {
	Date         time.Time      `json:"date"`
	Time         string         `json:"time"`
	Reason       string         `json:"reason"`
	ResourceID   string         `json:"resource_id,omitempty"`
	ResourceName string         `json:"resource_name,omitempty"`
	Kind         SuggestionKind `json:"kind"`
	DistanceKm   *float64       `json:"distance_km,omitempty"`
}

// Key identifies a slot for deduplication.
func (s Suggestion) Key() string {
	return s.Date.Format(DateLayout) + "|" + s.Time + "|" + s.ResourceID
}
