package partition

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/kilianp07/studiodesk/core/model"
)

// Memo caches the most recent Result of a Partitioner. The cache key covers
// the inputs and the current calendar day, so a new day always recomputes.
type Memo struct {
	p *Partitioner

	mu  sync.Mutex
	key uint64
	ok  bool
	res Result
}

// NewMemo wraps p.
func NewMemo(p *Partitioner) *Memo { return &Memo{p: p} }

// Partition returns the cached Result when the inputs are unchanged.
// Errors are never cached. Every call gets its own copy of the result, so
// callers may modify it freely.
func (m *Memo) Partition(orders []model.Order, basicStatus string, filters model.FilterConfiguration) (Result, error) {
	key := m.fingerprint(orders, basicStatus, filters)
	m.mu.Lock()
	if m.ok && m.key == key {
		res := m.res.clone()
		m.mu.Unlock()
		return res, nil
	}
	m.mu.Unlock()

	res, err := m.p.Partition(orders, basicStatus, filters)
	if err != nil {
		return res, err
	}
	m.mu.Lock()
	m.key, m.res, m.ok = key, res.clone(), true
	m.mu.Unlock()
	return res, nil
}

// fingerprint hashes every input that can change the result. Strings are
// quoted so field boundaries stay unambiguous.
func (m *Memo) fingerprint(orders []model.Order, basicStatus string, f model.FilterConfiguration) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%q%q", model.StartOfDay(m.p.clock.Now()).Format(model.DateLayout), basicStatus)
	fmt.Fprintf(h, "%s%s%q%q%q", rangeKey(f.Created), rangeKey(f.Appointment), f.Status, f.Payment, f.Sort)
	fmt.Fprintf(h, "%d;", len(orders))
	for _, o := range orders {
		fmt.Fprintf(h, "%q%q%q%q%q%q%q", o.ID, o.ScheduledDate, o.ScheduledTime, o.Status, o.Price.String(), o.Client, o.Address)
		if o.CreatedAt != nil {
			fmt.Fprintf(h, "c%d", o.CreatedAt.UnixNano())
		} else {
			fmt.Fprint(h, "c-")
		}
		if o.Paid != nil {
			fmt.Fprintf(h, "p%t", *o.Paid)
		} else {
			fmt.Fprint(h, "p-")
		}
		fmt.Fprint(h, ";")
	}
	return h.Sum64()
}

func rangeKey(r model.DateRange) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return fmt.Sprint(t.UnixNano())
	}
	return fmt.Sprintf("[%s,%s]", bound(r.From), bound(r.To))
}

// clone deep-copies the result so the cached value and the returned one
// share no memory.
func (r Result) clone() Result {
	out := r
	out.Today = cloneOrders(r.Today)
	out.ThisWeek = cloneOrders(r.ThisWeek)
	out.Remaining = cloneOrders(r.Remaining)
	out.FilteredRemaining = cloneOrders(r.FilteredRemaining)
	out.AllFiltered = cloneOrders(r.AllFiltered)
	if r.Excluded != nil {
		out.Excluded = make([]*DataError, len(r.Excluded))
		for i, e := range r.Excluded {
			de := *e
			out.Excluded[i] = &de
		}
	}
	return out
}

func cloneOrders(in []model.Order) []model.Order {
	if in == nil {
		return nil
	}
	out := make([]model.Order, len(in))
	for i, o := range in {
		if o.CreatedAt != nil {
			t := *o.CreatedAt
			o.CreatedAt = &t
		}
		if o.Paid != nil {
			p := *o.Paid
			o.Paid = &p
		}
		out[i] = o
	}
	return out
}
