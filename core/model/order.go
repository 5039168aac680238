package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a photography order.
type OrderStatus string

const (
	StatusScheduled   OrderStatus = "scheduled"
	StatusCompleted   OrderStatus = "completed"
	StatusPending     OrderStatus = "pending"
	StatusCanceled    OrderStatus = "canceled"
	StatusCancelled   OrderStatus = "cancelled"
	StatusRescheduled OrderStatus = "rescheduled"
	StatusInProgress  OrderStatus = "in_progress"
	StatusEditing     OrderStatus = "editing"
	StatusReview      OrderStatus = "review"
	StatusDelivered   OrderStatus = "delivered"
)

// Statuses lists every known order status. Both spellings of cancelled are
// kept because upstream data uses them interchangeably.
var Statuses = []OrderStatus{
	StatusScheduled,
	StatusCompleted,
	StatusPending,
	StatusCanceled,
	StatusCancelled,
	StatusRescheduled,
	StatusInProgress,
	StatusEditing,
	StatusReview,
	StatusDelivered,
}

// Valid reports whether s belongs to the closed status set.
func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// DateLayout is the canonical calendar date layout of ScheduledDate.
const DateLayout = "2006-01-02"

// Order is the normalized order record consumed by the partitioner.
type Order struct {
	ID string `json:"id"`
	// ScheduledDate is kept as received so malformed values can be reported
	// instead of being silently zeroed during decoding.
	ScheduledDate string          `json:"scheduled_date"`
	ScheduledTime string          `json:"scheduled_time,omitempty"`
	Status        OrderStatus     `json:"status"`
	Price         decimal.Decimal `json:"price"`

	// CreatedAt is the true creation timestamp when the source provides one.
	CreatedAt *time.Time `json:"created_at,omitempty"`
	// Paid is the authoritative payment flag when the source provides one.
	Paid *bool `json:"paid,omitempty"`

	Client  string `json:"client,omitempty"`
	Address string `json:"address,omitempty"`
}

// ParseScheduledDate returns the scheduled calendar date at midnight in loc.
// Plain dates and RFC3339 timestamps are accepted; for timestamps the date is
// taken after converting to loc.
func (o Order) ParseScheduledDate(loc *time.Location) (time.Time, error) {
	return ParseDate(o.ScheduledDate, loc)
}

// ParseDate parses a calendar date or RFC3339 timestamp and truncates it to
// midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t.In(loc)), nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
