package scenarios

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/studiodesk/app"
	"github.com/kilianp07/studiodesk/config"
	"github.com/kilianp07/studiodesk/core/clock"
	"github.com/kilianp07/studiodesk/core/model"
	"github.com/kilianp07/studiodesk/core/partition"
	"github.com/kilianp07/studiodesk/infra/logger"
	"github.com/kilianp07/studiodesk/infra/metrics"
	"github.com/kilianp07/studiodesk/infra/records"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	cfg := &config.Config{}
	cfg.Partition.WeekStart = sc.WeekStart
	cfg.SetDefaults()
	svc, err := app.New(cfg,
		app.WithClock(clock.Fixed(sc.Now)),
		app.WithMetricsSink(sink),
		app.WithLogger(logger.NopLogger{}),
	)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if sc.Partition != nil {
		runPartition(t, svc, sc.Partition)
	}
	if sc.Suggest != nil {
		runSuggest(t, svc, sc.Suggest)
	}

	metric := "studiodesk_runs_total"
	if sc.Suggest == nil && sc.Partition.Expected.ConfigError != "" {
		metric = "studiodesk_filter_config_errors_total"
	}
	n, err := testutil.GatherAndCount(reg, metric)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n == 0 {
		t.Errorf("scenario %s recorded no %s", sc.Name, metric)
	}
}

func runPartition(t *testing.T, svc *app.Service, def *PartitionDef) {
	t.Helper()
	orders, err := records.DecodeOrders(def.Orders)
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	filters, err := def.Filters()
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	res, err := svc.Partition(orders, def.BasicStatus, filters)
	if def.Expected.ConfigError != "" {
		var ce *partition.ConfigurationError
		if !errors.As(err, &ce) || ce.Field != def.Expected.ConfigError {
			t.Fatalf("expected configuration error on %s, got %v", def.Expected.ConfigError, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	compareIDs(t, "today", def.Expected.Today, ids(res.Today))
	compareIDs(t, "this_week", def.Expected.ThisWeek, ids(res.ThisWeek))
	compareIDs(t, "remaining", def.Expected.Remaining, ids(res.FilteredRemaining))
	compareIDs(t, "excluded", def.Expected.Excluded, res.ExcludedIDs())
}

func runSuggest(t *testing.T, svc *app.Service, def *SuggestDef) {
	t.Helper()
	req, err := def.Request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	out, err := svc.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	got := make([]string, len(out))
	for i, s := range out {
		got[i] = describe(s)
		if s.Kind == model.SuggestionNearby && def.Expected.MaxDistanceKm > 0 {
			if s.DistanceKm == nil || *s.DistanceKm > def.Expected.MaxDistanceKm {
				t.Errorf("suggestion %d too far: %v", i, s.DistanceKm)
			}
		}
	}
	compareIDs(t, "suggestions", def.Expected.Suggestions, got)
}

func describe(s model.Suggestion) string {
	return fmt.Sprintf("%s %s %s %s", s.Kind, s.ResourceID, s.Date.Format(model.DateLayout), s.Time)
}

func ids(orders []model.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func compareIDs(t *testing.T, what string, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("%s: expected %v, got %v", what, want, got)
		return
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("%s: expected %v, got %v", what, want, got)
			return
		}
	}
}
