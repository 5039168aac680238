package advisor

import (
	"errors"

	"github.com/kilianp07/studiodesk/core/factory"
)

// Config defines the suggestion heuristics.
type Config struct {
	NearbyRadiusKm float64              `json:"nearby_radius_km"`
	MaxSuggestions int                  `json:"max_suggestions"`
	MinSuggestions int                  `json:"min_suggestions"`
	PreferredDays  int                  `json:"preferred_days"`
	DriveTime      factory.ModuleConfig `json:"drive_time"`
}

// SetDefaults fills unset fields: 30 km radius, at most 5 suggestions, the
// fallback pass below 3, and 3 days for the preferred photographer.
func (c *Config) SetDefaults() {
	if c.NearbyRadiusKm == 0 {
		c.NearbyRadiusKm = 30
	}
	if c.MaxSuggestions == 0 {
		c.MaxSuggestions = 5
	}
	if c.MinSuggestions == 0 {
		c.MinSuggestions = 3
	}
	if c.PreferredDays == 0 {
		c.PreferredDays = 3
	}
	if c.DriveTime.Type == "" {
		c.DriveTime.Type = "flat_speed"
	}
}

// Validate rejects negative limits.
func (c Config) Validate() error {
	if c.NearbyRadiusKm < 0 {
		return errors.New("nearby_radius_km must not be negative")
	}
	if c.MaxSuggestions < 0 || c.MinSuggestions < 0 || c.PreferredDays < 0 {
		return errors.New("suggestion limits must not be negative")
	}
	return nil
}
