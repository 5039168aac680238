package partition

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/studiodesk/core/factory"
)

// Config defines partitioning settings loaded from configuration.
type Config struct {
	// WeekStart is the first day of the week, e.g. "sunday" or "monday".
	WeekStart string `json:"week_start"`
	// Payment selects the predicate deciding whether an order is paid.
	Payment factory.ModuleConfig `json:"payment"`
}

// SetDefaults applies the defaults used by the back office.
func (c *Config) SetDefaults() {
	if c.WeekStart == "" {
		c.WeekStart = "sunday"
	}
	if c.Payment.Type == "" {
		c.Payment.Type = PaymentFlag
	}
}

// Validate checks the week start.
func (c Config) Validate() error {
	if _, err := c.Weekday(); err != nil {
		return err
	}
	return nil
}

// Weekday returns WeekStart as a time.Weekday. An empty value means Sunday.
func (c Config) Weekday() (time.Weekday, error) {
	if c.WeekStart == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.WeekStart, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown week_start %q", c.WeekStart)
}
