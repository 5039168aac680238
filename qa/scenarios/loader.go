package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/studiodesk/core/model"
	"github.com/kilianp07/studiodesk/infra/records"
)

// PartitionDef describes one partition run and the buckets it must yield.
type PartitionDef struct {
	BasicStatus string           `yaml:"basic_status"`
	Sort        string           `yaml:"sort,omitempty"`
	Status      string           `yaml:"status,omitempty"`
	Payment     string           `yaml:"payment,omitempty"`
	From        string           `yaml:"from,omitempty"`
	To          string           `yaml:"to,omitempty"`
	Orders      []map[string]any `yaml:"orders"`
	Expected    PartitionExpected `yaml:"expected"`
}

type PartitionExpected struct {
	Today     []string `yaml:"today"`
	ThisWeek  []string `yaml:"this_week"`
	Remaining []string `yaml:"remaining"`
	Excluded  []string `yaml:"excluded"`
	// ConfigError names the rejected field when the run must fail.
	ConfigError string `yaml:"config_error,omitempty"`
}

// SuggestDef describes one advisor run.
type SuggestDef struct {
	Target    map[string]any   `yaml:"target,omitempty"`
	Preferred string           `yaml:"preferred,omitempty"`
	Resources []map[string]any `yaml:"resources"`
	PriorJobs []map[string]any `yaml:"prior_jobs"`
	Expected  SuggestExpected  `yaml:"expected"`
}

type SuggestExpected struct {
	// Suggestions lists "kind resource date time" in output order.
	Suggestions []string `yaml:"suggestions"`
	// MaxDistanceKm bounds the distance reported by nearby suggestions.
	MaxDistanceKm float64 `yaml:"max_distance_km,omitempty"`
}

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Now         time.Time     `yaml:"now"`
	WeekStart   string        `yaml:"week_start,omitempty"`
	Partition   *PartitionDef `yaml:"partition,omitempty"`
	Suggest     *SuggestDef   `yaml:"suggest,omitempty"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Partition == nil && sc.Suggest == nil {
		return nil, fmt.Errorf("scenario %s: nothing to run", sc.Name)
	}
	return &sc, nil
}

// Filters converts the definition to a filter configuration. Empty fields
// keep their default.
func (p PartitionDef) Filters() (model.FilterConfiguration, error) {
	f := model.DefaultFilters()
	if p.Sort != "" {
		f.Sort = model.SortDirection(p.Sort)
	}
	if p.Status != "" {
		f.Status = p.Status
	}
	if p.Payment != "" {
		f.Payment = model.PaymentFilter(p.Payment)
	}
	for _, b := range []struct {
		raw string
		dst **time.Time
	}{{p.From, &f.Appointment.From}, {p.To, &f.Appointment.To}} {
		if b.raw == "" {
			continue
		}
		t, err := model.ParseDate(b.raw, time.UTC)
		if err != nil {
			return f, err
		}
		*b.dst = &t
	}
	return f, nil
}

// Request decodes the advisor input.
func (s SuggestDef) Request() (model.SuggestRequest, error) {
	var req model.SuggestRequest
	var err error
	if req.Target, err = records.DecodeCoordinate(s.Target); err != nil {
		return req, err
	}
	if req.Resources, err = records.DecodeResources(s.Resources); err != nil {
		return req, err
	}
	if req.PriorJobs, err = records.DecodePriorJobs(s.PriorJobs); err != nil {
		return req, err
	}
	req.PreferredResource = s.Preferred
	return req, nil
}
