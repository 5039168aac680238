package model

import "time"

// Basic status values understood in addition to concrete statuses.
const (
	StatusAll         = "all"
	StatusOutstanding = "outstanding"
)

// SortDirection orders the remaining bucket by scheduled date.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PaymentFilter selects paid or unpaid orders.
type PaymentFilter string

const (
	PaymentAll    PaymentFilter = "all"
	PaymentPaid   PaymentFilter = "paid"
	PaymentUnpaid PaymentFilter = "unpaid"
)

// DateRange is an inclusive calendar-day range. A nil bound is open.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool { return r.From == nil && r.To == nil }

// Contains reports whether day falls inside the range. Bounds are compared
// by calendar day in day's location.
func (r DateRange) Contains(day time.Time) bool {
	day = StartOfDay(day)
	if r.From != nil && day.Before(StartOfDay(r.From.In(day.Location()))) {
		return false
	}
	if r.To != nil && day.After(StartOfDay(r.To.In(day.Location()))) {
		return false
	}
	return true
}

// FilterConfiguration holds the advanced filters applied to the remaining
// bucket.
type FilterConfiguration struct {
	Created     DateRange     `json:"created"`
	Appointment DateRange     `json:"appointment"`
	Status      string        `json:"status,omitempty"`
	Payment     PaymentFilter `json:"payment,omitempty" validate:"omitempty,oneof=all paid unpaid"`
	Sort        SortDirection `json:"sort" validate:"required,oneof=asc desc"`
}

// DefaultFilters returns the neutral configuration: open ranges, every
// status and payment state, ascending order.
func DefaultFilters() FilterConfiguration {
	return FilterConfiguration{
		Status:  StatusAll,
		Payment: PaymentAll,
		Sort:    SortAsc,
	}
}
