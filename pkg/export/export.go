// Package export writes partition results and suggestions as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/studiodesk/core/model"
	"github.com/kilianp07/studiodesk/core/partition"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var orderHeader = []string{"bucket", "id", "scheduled_date", "scheduled_time", "status", "price", "paid", "client", "address"}

// WriteOrdersCSV writes one row per bucketed order: today first, then this
// week, then the filtered remaining bucket in its sorted order.
func WriteOrdersCSV(w io.Writer, r partition.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeader); err != nil {
		return err
	}
	buckets := []struct {
		name   string
		orders []model.Order
	}{
		{partition.BucketToday.String(), r.Today},
		{partition.BucketThisWeek.String(), r.ThisWeek},
		{partition.BucketRemaining.String(), r.FilteredRemaining},
	}
	for _, b := range buckets {
		for _, o := range b.orders {
			paid := ""
			if o.Paid != nil {
				paid = strconv.FormatBool(*o.Paid)
			}
			rec := []string{b.name, o.ID, o.ScheduledDate, o.ScheduledTime, string(o.Status), o.Price.StringFixed(2), paid, o.Client, o.Address}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSuggestionsCSV writes one row per suggestion in ranking order.
func WriteSuggestionsCSV(w io.Writer, suggestions []model.Suggestion) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "time", "resource_id", "resource_name", "kind", "distance_km", "reason"}); err != nil {
		return err
	}
	for _, s := range suggestions {
		dist := ""
		if s.DistanceKm != nil {
			dist = strconv.FormatFloat(*s.DistanceKm, 'f', 1, 64)
		}
		rec := []string{
			s.Date.Format(model.DateLayout),
			s.Time,
			s.ResourceID,
			s.ResourceName,
			string(s.Kind),
			dist,
			s.Reason,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
