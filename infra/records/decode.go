package records

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/kilianp07/studiodesk/core/model"
)

var validate = validator.New()

type rawOrder struct {
	ID            string          `json:"id"`
	ScheduledDate string          `json:"scheduled_date"`
	ScheduledTime string          `json:"scheduled_time"`
	Status        string          `json:"status"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     *time.Time      `json:"created_at"`
	Paid          *bool           `json:"paid"`
	Client        string          `json:"client"`
	Address       string          `json:"address"`
}

type rawResource struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	AvailableTimes []string `json:"available_times"`
}

type rawPriorJob struct {
	ResourceID   string         `json:"resource_id"`
	ResourceName string         `json:"resource_name"`
	Location     map[string]any `json:"location"`
	Date         *time.Time     `json:"date"`
	Time         string         `json:"time"`
}

// normalizeKey folds the casing conventions used across the data stores.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

func decodeInto(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
		MatchName:        func(key, field string) bool { return normalizeKey(key) == normalizeKey(field) },
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(decimalHook, timeHook),
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case nil:
		return decimal.Zero, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromUint64(v), nil
	case decimal.Decimal:
		return v, nil
	default:
		return nil, fmt.Errorf("cannot use %T as a price", data)
	}
}

func timeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		return time.Parse(model.DateLayout, v)
	case time.Time:
		return v, nil
	default:
		return data, nil
	}
}

// NormalizeStatus lower-cases s and turns spaces and hyphens into
// underscores, so "In Progress" becomes "in_progress".
func NormalizeStatus(s string) model.OrderStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return model.OrderStatus(s)
}

// DecodeOrders converts raw order records. Scheduled dates are passed
// through untouched; a malformed one is reported later by the partitioner.
func DecodeOrders(raw []map[string]any) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(raw))
	for i, r := range raw {
		var ro rawOrder
		if err := decodeInto(r, &ro); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		if ro.Price.IsNegative() {
			return nil, fmt.Errorf("order %d (%s): negative price %s", i, ro.ID, ro.Price)
		}
		orders = append(orders, model.Order{
			ID:            ro.ID,
			ScheduledDate: strings.TrimSpace(ro.ScheduledDate),
			ScheduledTime: ro.ScheduledTime,
			Status:        NormalizeStatus(ro.Status),
			Price:         ro.Price,
			CreatedAt:     ro.CreatedAt,
			Paid:          ro.Paid,
			Client:        ro.Client,
			Address:       ro.Address,
		})
	}
	return orders, nil
}

// DecodeResources converts raw photographer records. ID and name are
// required.
func DecodeResources(raw []map[string]any) ([]model.Resource, error) {
	res := make([]model.Resource, 0, len(raw))
	for i, r := range raw {
		var rr rawResource
		if err := decodeInto(r, &rr); err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, err)
		}
		m := model.Resource{ID: rr.ID, Name: strings.TrimSpace(rr.Name), AvailableTimes: rr.AvailableTimes}
		if err := validate.Struct(m); err != nil {
			return nil, fmt.Errorf("resource %d: %w", i, fieldErrors(err))
		}
		res = append(res, m)
	}
	return res, nil
}

// DecodePriorJobs converts raw booked-job records. A job without a location
// is kept; the advisor ignores it for distance routing.
func DecodePriorJobs(raw []map[string]any) ([]model.PriorJob, error) {
	jobs := make([]model.PriorJob, 0, len(raw))
	for i, r := range raw {
		var rj rawPriorJob
		if err := decodeInto(r, &rj); err != nil {
			return nil, fmt.Errorf("prior job %d: %w", i, err)
		}
		loc, err := DecodeCoordinate(rj.Location)
		if err != nil {
			return nil, fmt.Errorf("prior job %d: %w", i, err)
		}
		j := model.PriorJob{ResourceID: rj.ResourceID, ResourceName: rj.ResourceName, Location: loc, Time: rj.Time}
		if rj.Date != nil {
			j.Date = *rj.Date
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// DecodeCoordinate converts a {lat, lng} record. A nil or empty record
// yields nil.
func DecodeCoordinate(raw map[string]any) (*model.Coordinate, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var c struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := decodeInto(raw, &c); err != nil {
		return nil, fmt.Errorf("coordinate: %w", err)
	}
	if c.Lat == nil || c.Lng == nil {
		return nil, errors.New("coordinate: lat and lng are required")
	}
	coord := model.Coordinate{Lat: *c.Lat, Lng: *c.Lng}
	if err := validate.Struct(coord); err != nil {
		return nil, fmt.Errorf("coordinate: %w", fieldErrors(err))
	}
	return &coord, nil
}

func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return errors.New(strings.Join(msgs, ", "))
}
