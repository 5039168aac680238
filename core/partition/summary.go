package partition

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/studiodesk/core/model"
)

// Summary aggregates the billing figures of one bucket.
type Summary struct {
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	Outstanding decimal.Decimal `json:"outstanding"`
	MeanPrice   float64         `json:"mean_price"`
	MedianPrice float64         `json:"median_price"`
}

// Summarize totals prices and reports the unpaid share according to pred.
// Mean and median are zero for an empty list.
func Summarize(orders []model.Order, pred PaymentPredicate) Summary {
	s := Summary{Count: len(orders), Total: decimal.Zero, Outstanding: decimal.Zero}
	if len(orders) == 0 {
		return s
	}
	prices := make([]float64, len(orders))
	for i, o := range orders {
		s.Total = s.Total.Add(o.Price)
		if pred != nil && !pred.IsPaid(o) {
			s.Outstanding = s.Outstanding.Add(o.Price)
		}
		prices[i] = o.Price.InexactFloat64()
	}
	sort.Float64s(prices)
	s.MeanPrice = stat.Mean(prices, nil)
	s.MedianPrice = stat.Quantile(0.5, stat.Empirical, prices, nil)
	return s
}

// Summaries holds one Summary per bucket of a Result.
type Summaries struct {
	Today     Summary `json:"today"`
	ThisWeek  Summary `json:"this_week"`
	Remaining Summary `json:"remaining"`
}

// Summarize computes per-bucket summaries of r, using the filtered
// remaining bucket.
func (p *Partitioner) Summarize(r Result) Summaries {
	return Summaries{
		Today:     Summarize(r.Today, p.payment),
		ThisWeek:  Summarize(r.ThisWeek, p.payment),
		Remaining: Summarize(r.FilteredRemaining, p.payment),
	}
}
