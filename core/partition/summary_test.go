package partition

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studiodesk/core/model"
)

func TestSummarize(t *testing.T) {
	paid := true
	orders := []model.Order{
		{ID: "a", Price: decimal.RequireFromString("600.00"), Paid: &paid},
		{ID: "b", Price: decimal.RequireFromString("100.50")},
		{ID: "c", Price: decimal.RequireFromString("199.50")},
	}
	s := Summarize(orders, Flag{Fallback: PriceThreshold{Threshold: decimal.NewFromInt(150)}})
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Total.Equal(decimal.NewFromInt(900)), "total %s", s.Total)
	assert.True(t, s.Outstanding.Equal(decimal.RequireFromString("100.50")), "outstanding %s", s.Outstanding)
	assert.InDelta(t, 300.0, s.MeanPrice, 1e-9)
	assert.InDelta(t, 199.5, s.MedianPrice, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.Count)
	assert.True(t, s.Total.IsZero())
	assert.Zero(t, s.MeanPrice)
}

func TestPartitionerSummarize(t *testing.T) {
	p := newPartitioner(t, Config{})
	orders := []model.Order{
		order("today", "2025-01-05", model.StatusScheduled),
		order("old", "2024-12-01", model.StatusCompleted),
		order("older", "2024-11-01", model.StatusScheduled),
	}
	res, err := p.Partition(orders, model.StatusOutstanding, model.DefaultFilters())
	require.NoError(t, err)
	sum := p.Summarize(res)
	assert.Equal(t, 1, sum.Today.Count)
	assert.Equal(t, 0, sum.ThisWeek.Count)
	assert.Equal(t, 1, sum.Remaining.Count, "summary follows the filtered bucket")
}
