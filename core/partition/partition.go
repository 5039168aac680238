package partition

import (
	"errors"
	"sort"
	"time"

	"github.com/kilianp07/studiodesk/core/clock"
	"github.com/kilianp07/studiodesk/core/logger"
	"github.com/kilianp07/studiodesk/core/model"
)

// Result is the bucketed view of an order list.
type Result struct {
	Today    []model.Order `json:"today"`
	ThisWeek []model.Order `json:"this_week"`
	// Remaining is the classified bucket before filtering.
	Remaining []model.Order `json:"-"`
	// FilteredRemaining is Remaining after filtering and sorting.
	FilteredRemaining []model.Order `json:"remaining"`
	// AllFiltered is Today, ThisWeek and FilteredRemaining concatenated.
	AllFiltered []model.Order `json:"-"`
	TotalCount  int           `json:"total_count"`
	Excluded    []*DataError  `json:"-"`
}

// ExcludedIDs lists the identifiers of orders left out of every bucket.
func (r Result) ExcludedIDs() []string {
	ids := make([]string, len(r.Excluded))
	for i, e := range r.Excluded {
		ids[i] = e.OrderID
	}
	return ids
}

// Err joins the data errors of excluded orders, or returns nil.
func (r Result) Err() error {
	if len(r.Excluded) == 0 {
		return nil
	}
	errs := make([]error, len(r.Excluded))
	for i, e := range r.Excluded {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Partitioner buckets, filters and sorts orders. It is safe for concurrent
// use.
type Partitioner struct {
	clock     clock.Clock
	weekStart time.Weekday
	payment   PaymentPredicate
	log       logger.Logger
}

// Option customises a Partitioner.
type Option func(*Partitioner)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Partitioner) { p.log = logger.OrNop(l) }
}

// WithPaymentPredicate overrides the predicate selected by Config.Payment.
func WithPaymentPredicate(pred PaymentPredicate) Option {
	return func(p *Partitioner) {
		if pred != nil {
			p.payment = pred
		}
	}
}

// New creates a Partitioner. A nil clock reads the system clock.
func New(cfg Config, clk clock.Clock, opts ...Option) (*Partitioner, error) {
	cfg.SetDefaults()
	ws, err := cfg.Weekday()
	if err != nil {
		return nil, err
	}
	pred, err := NewPaymentPredicate(cfg.Payment)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System{}
	}
	p := &Partitioner{clock: clk, weekStart: ws, payment: pred, log: logger.Nop{}}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// PaymentPredicate returns the predicate used by the payment filter.
func (p *Partitioner) PaymentPredicate() PaymentPredicate { return p.payment }

// Partition classifies orders relative to the current day, then filters and
// sorts the remaining bucket. The input slice is not modified. A
// *ConfigurationError is returned when the filters are invalid; unparseable
// orders are reported in Result.Excluded instead.
func (p *Partitioner) Partition(orders []model.Order, basicStatus string, filters model.FilterConfiguration) (Result, error) {
	if err := ValidateFilters(basicStatus, filters); err != nil {
		return Result{}, err
	}
	w := newWindow(p.clock.Now(), p.weekStart)

	res := Result{
		Today:     []model.Order{},
		ThisWeek:  []model.Order{},
		Remaining: []model.Order{},
	}
	var remaining []dated
	for _, o := range orders {
		day, err := o.ParseScheduledDate(w.loc)
		if err != nil {
			res.Excluded = append(res.Excluded, &DataError{OrderID: o.ID, Value: o.ScheduledDate, Err: err})
			continue
		}
		switch w.classify(day) {
		case BucketToday:
			res.Today = append(res.Today, o)
		case BucketThisWeek:
			res.ThisWeek = append(res.ThisWeek, o)
		default:
			res.Remaining = append(res.Remaining, o)
			remaining = append(remaining, dated{order: o, day: day})
		}
	}
	res.TotalCount = len(res.Today) + len(res.ThisWeek) + len(res.Remaining)

	stages := []keepFunc{
		basicStatusFilter(basicStatus),
		createdFilter(filters.Created, w.loc),
		appointmentFilter(filters.Appointment),
		statusOverride(filters.Status),
		paymentFilter(filters.Payment, p.payment),
	}
	for _, keep := range stages {
		remaining = narrow(remaining, keep)
	}
	sortByDay(remaining, filters.Sort)

	res.FilteredRemaining = make([]model.Order, len(remaining))
	for i, d := range remaining {
		res.FilteredRemaining[i] = d.order
	}
	res.AllFiltered = make([]model.Order, 0, len(res.Today)+len(res.ThisWeek)+len(res.FilteredRemaining))
	res.AllFiltered = append(res.AllFiltered, res.Today...)
	res.AllFiltered = append(res.AllFiltered, res.ThisWeek...)
	res.AllFiltered = append(res.AllFiltered, res.FilteredRemaining...)

	for _, e := range res.Excluded {
		p.log.Debugf("excluding order: %v", e)
	}
	p.log.Debugw("orders partitioned", map[string]any{
		"today":     len(res.Today),
		"this_week": len(res.ThisWeek),
		"remaining": len(res.Remaining),
		"filtered":  len(res.FilteredRemaining),
		"excluded":  len(res.Excluded),
	})
	return res, nil
}

func sortByDay(ds []dated, dir model.SortDirection) {
	sort.SliceStable(ds, func(i, j int) bool {
		if dir == model.SortDesc {
			return ds[i].day.After(ds[j].day)
		}
		return ds[i].day.Before(ds[j].day)
	})
}
